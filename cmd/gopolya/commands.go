package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	catalogPath string
	tolerance   float64
)

func newRootCmd(klogFlags *flag.FlagSet) *cobra.Command {
	root := &cobra.Command{
		Use:           "gopolya",
		Short:         "Count and enumerate polyhedron colorings up to rotation",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().AddGoFlagSet(klogFlags)
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "group catalog db pathname (overrides config)")
	root.PersistentFlags().Float64Var(&tolerance, "tolerance", 0, "centroid match tolerance (overrides config)")

	root.AddCommand(
		countCmd(),
		enumerateCmd(),
		groupCmd(),
		verifyCmd(),
		scriptCmd(),
	)
	return root
}

// loadConfig reads --config (if given) and applies flag overrides.
func loadConfig() (gopolya.Config, error) {
	cfg := gopolya.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = gopolya.LoadConfig(configPath); err != nil {
			return cfg, err
		}
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if tolerance > 0 {
		cfg.Tolerance = tolerance
	}
	return cfg, cfg.Validate()
}

func withSession(fn func(sess *session, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sess, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer sess.Close()
		return fn(sess, args)
	}
}

func countCmd() *cobra.Command {
	var numColors int

	cmd := &cobra.Command{
		Use:   "count SOLID KIND [SPEC]",
		Short: "Count colorings up to rotation (e.g. count dodecahedron vertex \"red:9, blue:6, green:5\")",
		Args:  cobra.RangeArgs(2, 3),
		RunE: withSession(func(sess *session, args []string) error {
			G, _, err := sess.group(args[0], args[1])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if numColors <= 0 {
					return errors.New("either a color spec or --colors is required")
				}
				count, err := libpolya.CountUnconstrained(numColors, G)
				if err != nil {
					return err
				}
				fmt.Println(count.String())
				return nil
			}

			spec, err := libpolya.ParseColorSpec(args[2])
			if err != nil {
				return err
			}
			count, err := libpolya.CountColorings(spec, G)
			if err != nil {
				return err
			}
			fmt.Println(count.String())
			return nil
		}),
	}
	cmd.Flags().IntVarP(&numColors, "colors", "c", 0, "count unconstrained colorings using this many colors")
	return cmd
}

func enumerateCmd() *cobra.Command {
	var (
		maxResults int
		method     string
		outDir     string
		preview    int
	)

	cmd := &cobra.Command{
		Use:   "enumerate SOLID KIND SPEC",
		Short: "Write one canonical coloring per orbit to a result file",
		Args:  cobra.ExactArgs(3),
		RunE: withSession(func(sess *session, args []string) error {
			G, kind, err := sess.group(args[0], args[1])
			if err != nil {
				return err
			}
			spec, err := libpolya.ParseColorSpec(args[2])
			if err != nil {
				return err
			}

			opts := sess.cfg.EnumOpts()
			if maxResults >= 0 {
				opts.MaxResults = maxResults
			}
			if method != "" {
				if opts.Method, err = gopolya.ParseEnumMethod(method); err != nil {
					return err
				}
			}
			if outDir == "" {
				outDir = sess.cfg.OutputDir
			}
			if preview < 0 {
				preview = sess.cfg.Preview
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			startTime := time.Now()
			res, err := libpolya.EnumerateColorings(ctx, spec, G, opts)
			if err != nil {
				return err
			}

			pathname, err := writeResultFile(outDir, kind, spec, res)
			if err != nil {
				return err
			}

			printSummary(os.Stdout, kind, spec, res, time.Since(startTime))
			printPreview(os.Stdout, spec, res.Colorings, preview)
			fmt.Printf("wrote %s\n", pathname)
			return nil
		}),
	}
	cmd.Flags().IntVar(&maxResults, "max", -1, "max number of representatives (0 for no cap; default from config)")
	cmd.Flags().StringVar(&method, "method", "", "search method: pruned or filter (default from config)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory result files are written to (default from config)")
	cmd.Flags().IntVar(&preview, "preview", -1, "number of representatives echoed (default from config)")
	return cmd
}

// writeResultFile writes res to <dir>/<kind>_colorings_<ULID>.txt, marking it if it was truncated.
func writeResultFile(dir string, kind gopolya.ElementKind, spec gopolya.ColorSpec, res gopolya.EnumResult) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	pathname := filepath.Join(dir, fmt.Sprintf("%s_colorings_%s.txt", kind, ulid.Make()))

	file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return "", err
	}
	opts := gopolya.DefaultPrintOpts
	opts.Kind = kind
	opts.Truncated = res.Truncated
	err = gopolya.WriteClasses(file, spec, res.Colorings, opts)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return pathname, err
}

func groupCmd() *cobra.Command {
	var (
		generators string
		n          int
		order      int
		elements   bool
	)

	cmd := &cobra.Command{
		Use:   "group [SOLID KIND]",
		Short: "Describe a rotation group (or the group of --generators)",
		Args:  cobra.RangeArgs(0, 2),
		RunE: withSession(func(sess *session, args []string) error {
			var (
				G   *libpolya.Group
				err error
			)
			switch {
			case generators != "":
				G, err = sess.customGroup(n, generators, order)
			case len(args) == 2:
				G, _, err = sess.group(args[0], args[1])
			default:
				err = errors.New("expected SOLID KIND or --generators")
			}
			if err != nil {
				return err
			}

			printGroup(os.Stdout, G, elements)
			return nil
		}),
	}
	cmd.Flags().StringVar(&generators, "generators", "", "\";\" separated generators in cycle notation")
	cmd.Flags().IntVar(&n, "n", 0, "number of elements --generators act on")
	cmd.Flags().IntVar(&order, "order", 0, "expected order of the group of --generators (0 if unknown)")
	cmd.Flags().BoolVar(&elements, "elements", false, "list every element in cycle notation")
	return cmd
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify SOLID KIND SPEC",
		Short: "Cross-check the Burnside count against enumeration and a brute-force orbit count",
		Args:  cobra.ExactArgs(3),
		RunE: withSession(func(sess *session, args []string) error {
			G, _, err := sess.group(args[0], args[1])
			if err != nil {
				return err
			}
			spec, err := libpolya.ParseColorSpec(args[2])
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			count, err := libpolya.CountColorings(spec, G)
			if err != nil {
				return err
			}
			res, err := libpolya.EnumerateColorings(ctx, spec, G, gopolya.EnumOpts{})
			if err != nil {
				return err
			}
			brute, err := libpolya.CountOrbitsBruteForce(ctx, spec, G)
			if err != nil {
				return err
			}

			ok := count.IsInt64() && count.Int64() == int64(len(res.Colorings)) && int64(brute) == count.Int64()
			printVerify(os.Stdout, count, len(res.Colorings), brute, ok)
			if !ok {
				return errors.New("counts disagree")
			}
			return nil
		}),
	}
	return cmd
}

func scriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script [FILE.py]",
		Short: "Run a gpython script using the polya module (or start a REPL)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			if err := go_gpython(pathname); err != nil {
				klog.Errorf("script failed: %v", err)
				return err
			}
			return nil
		},
	}
	return cmd
}

func joinInts(vals []int) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = fmt.Sprint(v)
	}
	return strings.Join(strs, " ")
}
