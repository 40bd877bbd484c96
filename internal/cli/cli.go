/*
 * cli.go, part of mdpost.
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

//Package cli has what the mdpost commands share: flags, logging and configuration.
package cli

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mdpost/mdpost/config"
)

//Setup parses the command line, sets the default logger, and returns the configuration
//given with -c, or the defaults. It exits the program on errors.
func Setup(name, usage string) *config.Config {
	cfile := flag.String("c", "", "YAML configuration file")
	verbose := flag.Bool("v", false, "log debugging information")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-c config.yaml] [-v]\n\n%s\n\n", name, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).With("cmd", name))
	if *cfile != "" {
		slog.Info("Reading configuration", "file", *cfile)
	}
	c, err := config.New(*cfile)
	if err != nil {
		Fatal(err)
	}
	return c
}

//Fatal logs err and exits with status 1.
func Fatal(err error) {
	slog.Error(err.Error())
	os.Exit(1)
}

//Check calls Fatal if err is not nil.
func Check(err error) {
	if err != nil {
		Fatal(err)
	}
}

//DPI returns own if it is set, otherwise the resolution of the configuration.
func DPI(own int, c *config.Config) int {
	if own > 0 {
		return own
	}
	return c.DPI
}
