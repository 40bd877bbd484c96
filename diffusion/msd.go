/*
 * msd.go, part of mdpost.
 *
 * Copyright 2025 The mdpost Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package diffusion

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

//Timestepper is implemented by trajectories that know the MD step of the last frame read.
type Timestepper interface {
	Timestep() int
}

//Series is an MSD as a function of the step.
type Series struct {
	Steps []float64
	MSD   []float64 //Å²
}

//Positions are the coordinates of a set of atoms along a trajectory. Positions[t][i]
//is the position of the atom i in the frame t.
type Positions [][][3]float64

//ReadPositions reads all the frames of the trajectory T. If unwrap is true, the jumps of more than
//half a cell vector between consecutive frames are undone, which requires T to return the box.
//Triclinic cells are handled if T gives the cell vectors (see mdpost.Traj).
//The steps are taken from T if it implements Timestepper, otherwise the frame number is used.
func ReadPositions(T mdpost.Traj, unwrap bool) (Positions, []float64, error) {
	var (
		pos   Positions
		steps []float64
		box   = make([]float64, 9)
	)
	coords := v3.Zeros(T.Len())
	ts, hasts := T.(Timestepper)
	for frame := 0; ; frame++ {
		for i := range box {
			box[i] = 0
		}
		err := T.Next(coords, box)
		if err != nil {
			if mdpost.IsLastFrame(err) {
				break
			}
			return nil, nil, mdpost.ErrDecorate(err, "ReadPositions")
		}
		cur := make([][3]float64, T.Len())
		for i := range cur {
			cur[i] = coords.Vec(i)
		}
		if unwrap && frame > 0 {
			cell, err := cellOf(box)
			if err != nil {
				return nil, nil, fmt.Errorf("diffusion.ReadPositions: frame %d: %w", frame, err)
			}
			if err := Unwrap(pos[frame-1], cur, cell); err != nil {
				return nil, nil, fmt.Errorf("diffusion.ReadPositions: frame %d: %w", frame, err)
			}
		}
		pos = append(pos, cur)
		if hasts {
			steps = append(steps, float64(ts.Timestep()))
		} else {
			steps = append(steps, float64(frame))
		}
	}
	if len(pos) == 0 {
		return nil, nil, fmt.Errorf("diffusion.ReadPositions: empty trajectory")
	}
	return pos, steps, nil
}

//cellOf builds the cell matrix from what a trajectory put in box: 3 orthogonal
//lengths, with the rest left at zero, or 9 cell vector components.
func cellOf(box []float64) (*v3.Matrix, error) {
	c := make([]float64, 9)
	if floats.Norm(box[3:9], 2) == 0 {
		c[0], c[4], c[8] = box[0], box[1], box[2]
	} else {
		copy(c, box[:9])
	}
	cell, _ := v3.NewMatrix(c)
	if v3.Volume(cell) == 0 {
		return nil, fmt.Errorf("no box, can't unwrap")
	}
	return cell, nil
}

//Unwrap moves each position in cur by whole cell vectors so it is the periodic image closest
//to the same atom in prev, which must be already unwrapped. The displacements are rounded in
//fractional coordinates, so the cell can be triclinic.
func Unwrap(prev, cur [][3]float64, cell *v3.Matrix) error {
	n := len(cur)
	if n == 0 {
		return nil
	}
	d := v3.Zeros(n)
	for i := range cur {
		d.SetVec(i, [3]float64{cur[i][0] - prev[i][0], cur[i][1] - prev[i][1], cur[i][2] - prev[i][2]})
	}
	frac := v3.Zeros(n)
	if err := frac.Frac(d, cell); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			frac.Set(i, k, math.Round(frac.At(i, k)))
		}
	}
	//frac now has the whole cell vectors to take away.
	shift := v3.Zeros(n)
	shift.Cart(frac, cell)
	for i := range cur {
		s := shift.Vec(i)
		for k := 0; k < 3; k++ {
			cur[i][k] -= s[k]
		}
	}
	return nil
}

//MSD returns the mean square displacement of the atoms for every lag between 0 and len(pos)-1 frames,
//averaged over all the time origins and all the atoms. It uses the FFT algorithm, O(N log N) per atom
//in the number of frames N.
func MSD(pos Positions) []float64 {
	N := len(pos)
	if N == 0 {
		return nil
	}
	natoms := len(pos[0])
	ret := make([]float64, N)
	if natoms == 0 {
		return ret
	}
	fft := fourier.NewFFT(2 * N)
	var (
		x     = make([]float64, 2*N)
		coeff = make([]complex128, N+1)
		acf   = make([]float64, 2*N)
		sq    = make([]float64, N)
		s1    = make([]float64, N)
		s2    = make([]float64, N)
	)
	for i := 0; i < natoms; i++ {
		for t := range sq {
			p := pos[t][i]
			sq[t] = p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		}
		squareTerm(sq, s1)
		for m := range s2 {
			s2[m] = 0
		}
		for k := 0; k < 3; k++ {
			for t := 0; t < N; t++ {
				x[t] = pos[t][i][k]
			}
			for t := N; t < 2*N; t++ {
				x[t] = 0
			}
			autocorr(fft, x, coeff, acf)
			for m := 0; m < N; m++ {
				s2[m] += acf[m] / float64(N-m)
			}
		}
		floats.AddScaled(s1, -2, s2)
		floats.Add(ret, s1)
	}
	floats.Scale(1/float64(natoms), ret)
	//the first point is zero by definition, the subtraction leaves rounding noise.
	ret[0] = 0
	return ret
}

//squareTerm puts in dst the sum over the time origins k of |r(k)|²+|r(k+m)|², divided by N-m,
//for every lag m, where sq[t] is |r(t)|².
func squareTerm(sq, dst []float64) {
	N := len(sq)
	q := 2 * floats.Sum(sq)
	for m := 0; m < N; m++ {
		if m > 0 {
			q -= sq[m-1] + sq[N-m]
		}
		dst[m] = q / float64(N-m)
	}
}

//autocorr puts in dst the non-normalized autocorrelation sum_k x(k)x(k+m) of the zero-padded
//signal x, whose second half must be zero.
func autocorr(fft *fourier.FFT, x []float64, coeff []complex128, dst []float64) {
	fft.Coefficients(coeff, x)
	for i, c := range coeff {
		coeff[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	fft.Sequence(dst, coeff)
	floats.Scale(1/float64(len(x)), dst)
}

//DirectMSD is the O(N²) version of MSD. It is kept for checking and for very short trajectories.
func DirectMSD(pos Positions) []float64 {
	N := len(pos)
	ret := make([]float64, N)
	if N == 0 || len(pos[0]) == 0 {
		return ret
	}
	natoms := len(pos[0])
	for m := 1; m < N; m++ {
		var s float64
		for k := 0; k+m < N; k++ {
			for i := 0; i < natoms; i++ {
				a, b := pos[k][i], pos[k+m][i]
				dx, dy, dz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
				s += dx*dx + dy*dy + dz*dz
			}
		}
		ret[m] = s / float64((N-m)*natoms)
	}
	return ret
}

//TrajMSD reads the trajectory T and returns its MSD series. See ReadPositions and MSD.
func TrajMSD(T mdpost.Traj, unwrap bool) (*Series, error) {
	pos, steps, err := ReadPositions(T, unwrap)
	if err != nil {
		return nil, err
	}
	slog.Debug("trajectory read", "frames", len(pos), "atoms", T.Len())
	for i := 2; i < len(steps); i++ {
		if steps[i]-steps[i-1] != steps[1]-steps[0] {
			slog.Warn("frames are not evenly spaced, the MSD steps will be wrong", "frame", i, "step", steps[i])
			break
		}
	}
	return &Series{Steps: steps, MSD: MSD(pos)}, nil
}

//Write writes the series as two columns, the step and the MSD, with a comment header.
//The step of each row is the lag plus the first step, so the file can be read back as
//if the MSD had been computed by LAMMPS during the run.
func (S *Series) Write(w io.Writer) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "# step msd\n")
	for i, m := range S.MSD {
		step := S.Steps[i]
		fmt.Fprintf(b, "%.0f %.8g\n", step, m)
	}
	return b.Flush()
}

//WriteFile writes the series to the file name. See Write.
func (S *Series) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := S.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
