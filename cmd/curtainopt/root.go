// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var log *zap.Logger

var rootCmd = &cobra.Command{
	Use:           "curtainopt",
	Short:         "NSGA-II daylighting optimizer for curtain-wall shading curves",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI, converting any panic raised deep inside the
// pipeline into a clean non-zero exit via a top-level defer-recover.
func Execute() {
	var err error
	log, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "curtainopt: cannot initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	defer func() {
		if r := recover(); r != nil {
			log.Error("curtainopt: fatal error", zap.Any("panic", r))
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		log.Error("curtainopt: command failed", zap.Error(err))
		os.Exit(1)
	}
}
