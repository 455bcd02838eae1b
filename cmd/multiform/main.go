package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomasbasham/multiform"
)

type encodeOptions struct {
	output          string
	boundary        string
	contentTypeOnly bool
	verbose         bool
}

func newRootCmd(stdout, stderr io.Writer, readFile readFileFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "multiform",
		Short: "Build multipart/form-data bodies",
		Long:  `multiform builds multipart/form-data bodies from curl-style field arguments.`,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.AddCommand(newEncodeCmd(stdout, stderr, readFile))
	return rootCmd
}

func newEncodeCmd(stdout, stderr io.Writer, readFile readFileFunc) *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode [flags] FIELD...",
		Short: "Encode fields as a multipart/form-data body",
		Long: `Encode fields as a multipart/form-data body.

Fields are encoded in the order given:
  name=value            text/plain part
  name=@path            file part sent as application/octet-stream
  name=@path;type=mime  file part with an explicit media type
  name=<path            text/plain part read from a file

The body is written to stdout (or --output) and the Content-Type header to
stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			return runEncode(opts, args, stdout, stderr, readFile, logger)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the body to this file instead of stdout")
	cmd.Flags().StringVar(&opts.boundary, "boundary", "", "Use a fixed boundary instead of a random one")
	cmd.Flags().BoolVar(&opts.contentTypeOnly, "content-type-only", false, "Print only the Content-Type value to stdout and discard the body")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func runEncode(opts *encodeOptions, args []string, stdout, stderr io.Writer, readFile readFileFunc, logger *slog.Logger) error {
	form := multiform.NewForm()
	for _, arg := range args {
		p, err := parseField(arg, readFile)
		if err != nil {
			return err
		}
		logger.Debug("Added part", "name", p.Name(), "contentType", p.ContentType(), "size", len(p.Contents()))
		form.Add(p)
	}

	var w io.Writer = stdout
	switch {
	case opts.contentTypeOnly:
		w = io.Discard
	case opts.output != "" && opts.output != "-":
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("Failed to close output file", "path", opts.output, "error", err)
			}
		}()
		w = f
	}

	encoder := multiform.NewEncoder(w)
	if opts.boundary != "" {
		boundary := opts.boundary
		encoder.SetBoundaryFunc(func() string { return boundary })
	}

	contentType, err := encoder.Encode(form)
	if err != nil {
		return err
	}
	logger.Debug("Encoded form", "parts", form.Len(), "contentType", contentType)

	if opts.contentTypeOnly {
		_, err = fmt.Fprintln(stdout, contentType)
		return err
	}
	_, err = fmt.Fprintf(stderr, "Content-Type: %s\n", contentType)
	return err
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, os.ReadFile).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
