// Command vipscall lists, describes and calls libvips operations by name.
//
//	vipscall -list
//	vipscall -describe embed
//	vipscall -out out.png embed @in.jpg 10 10 200 200 extend=mirror
//	vipscall -script pipeline.yaml
//
// Arguments starting with @ are loaded as images, key=value pairs become
// named options, and comma separated numbers become arrays.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cshum/vipscall/internal/script"
	"github.com/cshum/vipscall/vips"
)

func main() {
	list := flag.Bool("list", false, "List every operation")
	describe := flag.String("describe", "", "Describe the arguments of an operation")
	scriptFile := flag.String("script", "", "Run a YAML pipeline")
	options := flag.String("options", "", "libvips option string for the operation, e.g. \"[bands=3]\"")
	out := flag.String("out", "", "Save the first image result to this file")
	verbose := flag.Bool("v", false, "Log libvips messages down to info level")
	concurrency := flag.Int("concurrency", 0, "libvips worker threads, 0 for the default")

	flag.Parse()

	config := &vips.Config{ConcurrencyLevel: *concurrency}
	if *verbose {
		config.LogLevel = vips.LogLevelInfo
	}
	vips.Startup(config)
	defer vips.Shutdown()

	var err error
	switch {
	case *list:
		listOperations()
	case *describe != "":
		err = describeOperation(*describe)
	case *scriptFile != "":
		err = runScript(*scriptFile, *verbose)
	case flag.NArg() > 0:
		err = callOperation(flag.Arg(0), *options, flag.Args()[1:], *out)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Printf("vipscall: %v", err)
		vips.Shutdown()
		os.Exit(1)
	}
}

func listOperations() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, name := range vips.Operations() {
		fmt.Fprintf(w, "%s\t%s\n", name, snakeToCamel(name))
	}
}

func describeOperation(name string) error {
	d, err := vips.Introspect(name)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s), %d required inputs\n\n", d.Name, snakeToCamel(d.Name), d.RequiredInputs)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ARGUMENT\tGO NAME\tTYPE\tFLAGS\tDESCRIPTION")
	for _, arg := range d.Arguments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			arg.Name, goIdentifier(arg.Name), goTypeName(arg.Type.Name()), arg.Flags, arg.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, arg := range d.Arguments {
		if arg.Type.Fundamental() != vips.TypeEnum {
			continue
		}
		var nicks []string
		for _, v := range vips.EnumNicks(arg.Type.Name()) {
			nicks = append(nicks, v.Nick)
		}
		fmt.Printf("\n%s: %s\n", arg.Name, strings.Join(nicks, ", "))
	}
	return nil
}

func runScript(path string, verbose bool) error {
	s, err := script.ParseFile(path)
	if err != nil {
		return err
	}

	runner := &script.Runner{}
	if verbose {
		runner.Logf = log.Printf
	}

	session, err := runner.Run(s)
	if err != nil {
		return err
	}
	defer session.Close()

	for _, name := range session.Steps() {
		results, _ := session.Result(name)
		fmt.Printf("%s: %s\n", name, formatResults(results))
	}
	return nil
}

func callOperation(name, options string, rawArgs []string, out string) error {
	args, named, images, err := parseArgs(rawArgs)
	defer func() {
		for _, image := range images {
			image.Close()
		}
	}()
	if err != nil {
		return err
	}
	if len(named) > 0 {
		args = append(args, named)
	}

	results, err := vips.Call(name, options, args...)
	if err != nil {
		return err
	}
	defer vips.CloseResults(results)

	fmt.Println(formatResults(results))

	if out == "" {
		return nil
	}
	for _, r := range results {
		if image, ok := r.(*vips.Image); ok {
			return image.WriteToFile(out, nil)
		}
	}
	return fmt.Errorf("%s returned no image to save", name)
}

// parseArgs turns command line words into call arguments. images holds the
// images loaded for @file arguments, owned by the caller.
func parseArgs(words []string) (args []any, named vips.Options, images []*vips.Image, err error) {
	for _, word := range words {
		if key, value, ok := strings.Cut(word, "="); ok && key != "" && !strings.HasPrefix(word, "@") {
			if named == nil {
				named = vips.Options{}
			}
			v, image, err := parseValue(value)
			if err != nil {
				return nil, nil, images, err
			}
			if image != nil {
				images = append(images, image)
			}
			named[key] = v
			continue
		}

		v, image, err := parseValue(word)
		if err != nil {
			return nil, nil, images, err
		}
		if image != nil {
			images = append(images, image)
		}
		args = append(args, v)
	}
	return args, named, images, nil
}

func parseValue(word string) (any, *vips.Image, error) {
	if strings.HasPrefix(word, "@") {
		image, err := vips.NewImageFromFile(word[1:], nil)
		if err != nil {
			return nil, nil, err
		}
		return image, image, nil
	}

	if i, err := strconv.Atoi(word); err == nil {
		return i, nil, nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return f, nil, nil
	}
	if b, err := strconv.ParseBool(word); err == nil && (word == "true" || word == "false") {
		return b, nil, nil
	}

	if strings.Contains(word, ",") {
		parts := strings.Split(word, ",")
		numbers := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return word, nil, nil
			}
			numbers = append(numbers, f)
		}
		return numbers, nil, nil
	}

	return word, nil, nil
}

func formatResults(results []any) string {
	parts := make([]string, len(results))
	for i, r := range results {
		switch r := r.(type) {
		case *vips.Image:
			parts[i] = fmt.Sprintf("image %dx%d, %d bands, %s", r.Width(), r.Height(), r.Bands(), r.Format())
		case []byte:
			parts[i] = fmt.Sprintf("%d bytes", len(r))
		default:
			parts[i] = fmt.Sprintf("%v", r)
		}
	}
	return strings.Join(parts, "; ")
}
