/*
 * summary.go, part of mdpost.
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

package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

//Row is one quantity of a summary.
type Row struct {
	Key   string
	Value string
}

//R builds a Row, formatting the value with format.
func R(key, format string, args ...any) Row {
	return Row{Key: key, Value: fmt.Sprintf(format, args...)}
}

//Summary renders a titled box with the rows aligned in two columns.
func Summary(title string, rows ...Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Key))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r.Key))
		lines = append(lines, keyStyle.Render(r.Key+pad)+"  "+valueStyle.Render(r.Value))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{titleStyle.Render(title)}, lines...)...)
	return boxStyle.Render(body)
}
