// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/AleutianAI/linkrank/pkg/config"
	"github.com/spf13/cobra"
)

// runConfigInit handles `linkrank config init <path>`. It writes the
// resolved config, so --config and the log flags are carried into the file.
func runConfigInit(cmd *cobra.Command, s *session, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s: %w (use --force to overwrite)", path, fs.ErrExist)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := config.Write(path, s.cfg); err != nil {
		return err
	}
	s.logger.Info("Config written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
