package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/logshield/pkg/masking"
)

// maxLineSize bounds a single input line of the mask command.
const maxLineSize = 1024 * 1024

type maskOptions struct {
	summary bool
}

func newMaskCmd(root *rootOptions) *cobra.Command {
	opts := &maskOptions{}
	cmd := &cobra.Command{
		Use:   "mask [FILE]",
		Short: "Mask sensitive data in a log file",
		Long: `Read lines from FILE (or standard input when FILE is omitted or "-")
and write each line to standard output with sensitive data masked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMask(cmd, root, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print redaction counts to standard error")
	return cmd
}

func runMask(cmd *cobra.Command, root *rootOptions, opts *maskOptions, args []string) error {
	_, svc, err := loadMaskingService(cmd.Context(), root.configDir)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	stats, err := maskLines(in, cmd.OutOrStdout(), svc)
	if err != nil {
		return err
	}
	if opts.summary {
		fmt.Fprintln(cmd.ErrOrStderr(), stats)
	}
	return nil
}

// maskStats counts what maskLines did.
type maskStats struct {
	Lines  int
	Masked int
	ByKind map[masking.PatternKind]int
}

func (s maskStats) String() string {
	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, string(k))
	}
	slices.Sort(kinds)

	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k, s.ByKind[masking.PatternKind(k)])
	}
	return fmt.Sprintf("lines=%d masked=%d %s", s.Lines, s.Masked, strings.Join(parts, " "))
}

// maskLines copies r to w line by line, masking each line.
func maskLines(r io.Reader, w io.Writer, redactor masking.Redactor) (maskStats, error) {
	stats := maskStats{ByKind: make(map[masking.PatternKind]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		result := redactor.Redact(scanner.Text())
		stats.Lines++
		if result.Redacted() {
			stats.Masked++
			for kind, n := range result.Plan.CountByKind() {
				stats.ByKind[kind] += n
			}
		}
		if _, err := out.WriteString(result.Text); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}
	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("failed to write output: %w", err)
	}
	return stats, nil
}
