package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshint/pdfdeck/internal/pipeline"
	"github.com/meshint/pdfdeck/internal/progress"
	"github.com/meshint/pdfdeck/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.pdf] [output.pptx] [dpi]",
	Short: "Convert a PDF into a .pptx deck with the corner watermark obscured",
	Long: `Convert rasterizes each page of the input PDF, blends away the watermark
region in the bottom-right corner, and writes the pages as full-bleed
slides to a .pptx file.

All positional arguments are optional. With no input argument the command
prompts for a path; an empty answer cancels. The output defaults to the
input stem with a .pptx extension, and the DPI defaults to 100.`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	convertCmd.Flags().Int("dpi", 0, "rasterization resolution (default from config, 100)")
	convertCmd.Flags().StringP("output", "o", "", "output .pptx path (default: <input stem>.pptx)")
	convertCmd.Flags().BoolP("quiet", "q", false, "suppress progress and per-page output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	input, cancelled, err := resolveInput(cmd, args)
	if err != nil {
		return reportError(err)
	}
	if cancelled {
		fmt.Println("No file selected.")
		return nil
	}

	if _, err := os.Stat(input); err != nil {
		return reportError(fmt.Errorf("input file does not exist: %s", input))
	}

	output, _ := cmd.Flags().GetString("output")
	if len(args) >= 2 {
		output = args[1]
	}
	if output == "" {
		output = pipeline.OutputName(input)
	}

	dpi, err := resolveDPI(cmd, args)
	if err != nil {
		return reportError(err)
	}

	opts := pipeline.Options{DPI: dpi}
	var sink progress.Sink = progress.Nop{}
	var term *progress.Terminal
	if !quiet {
		fmt.Printf("Processing: %s\n", input)
		fmt.Printf("Target DPI: %d\n", dpi)
		opts.Trace = os.Stdout
		term = progress.NewTerminal()
		sink = term
	}

	err = pipeline.ConvertToFile(render.FileSource(input), output, opts, sink)
	if term != nil {
		term.Finish()
	}
	if err != nil {
		return reportError(err)
	}

	color.Green("✓ Done: %s", output)
	if !quiet {
		printSizes(input, output)
	}
	return nil
}

// resolveInput returns the input path from the first positional argument,
// or prompts for one. An empty answer means the user cancelled.
func resolveInput(cmd *cobra.Command, args []string) (input string, cancelled bool, err error) {
	if len(args) >= 1 {
		return args[0], false, nil
	}

	fmt.Print("PDF file to convert (empty to cancel): ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", true, nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", true, nil
	}
	return line, false, nil
}

// resolveDPI picks the resolution: third positional argument, then --dpi,
// then the configured default. Any positive integer is accepted.
func resolveDPI(cmd *cobra.Command, args []string) (int, error) {
	if len(args) >= 3 {
		dpi, err := strconv.Atoi(args[2])
		if err != nil {
			return 0, fmt.Errorf("invalid dpi %q", args[2])
		}
		if dpi <= 0 {
			return 0, fmt.Errorf("dpi must be positive, got %d", dpi)
		}
		return dpi, nil
	}
	if dpi, _ := cmd.Flags().GetInt("dpi"); dpi > 0 {
		return dpi, nil
	}
	return viper.GetInt("convert.dpi"), nil
}

// printSizes reports the input and output file sizes in MB, as a rough
// indication of the rasterization cost.
func printSizes(input, output string) {
	for _, f := range []struct{ label, path string }{
		{"Input", input},
		{"Output", output},
	} {
		info, err := os.Stat(f.path)
		if err != nil {
			continue
		}
		fmt.Printf("%s:  %.2f MB\n", f.label, float64(info.Size())/1024/1024)
	}
}

func reportError(err error) error {
	color.Red("✗ %v", err)
	return err
}
