// doccache-cli exercises the doccache pipeline from the command line:
// it decomposes type signatures into property trees and resolves
// declaration references against a symbol table loaded from YAML.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/docpipe/go-doccache/coordinator"
	"github.com/docpipe/go-doccache/resolver"
	"github.com/docpipe/go-doccache/typetree"
)

var (
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	typeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	flagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var (
	configPath string
	presetName string
	maxDepth   int
	showStats  bool
	verbose    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "doccache-cli",
		Short:         "Decompose type signatures and resolve declaration references",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML cache configuration file")
	root.PersistentFlags().StringVar(&presetName, "preset", "", "named cache preset (default|large|compact|disabled)")
	root.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "override the decomposition depth bound")
	root.PersistentFlags().BoolVar(&showStats, "stats", false, "print cache statistics after the command")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(decomposeCmd(), resolveCmd(), fingerprintCmd())
	return root
}

func buildLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func buildConfig() (coordinator.Config, error) {
	cfg := coordinator.DefaultConfig()
	var err error
	switch {
	case configPath != "":
		cfg, err = coordinator.LoadConfig(configPath)
	case presetName != "":
		cfg, err = coordinator.PresetConfig(presetName)
	}
	if err != nil {
		return coordinator.Config{}, err
	}
	if maxDepth > 0 {
		cfg.MaxDepth = maxDepth
	}
	return cfg, nil
}

func buildCoordinator(table resolver.SymbolTable) (*coordinator.Coordinator, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = &staticTable{}
	}
	return coordinator.New(typetree.NewSignatureParser(), table, cfg,
		coordinator.WithLogger(buildLogger()))
}

func decomposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompose <signature>",
		Short: "Expand a type signature into a property tree",
		Long:  "Expand a type signature into a property tree. Prefix the argument with @ to read the signature from a file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signature, err := readArg(args[0])
			if err != nil {
				return err
			}
			c, err := buildCoordinator(nil)
			if err != nil {
				return err
			}
			tree := c.Decompose(signature)
			printTree(cmd, tree, "", true, true)
			if showStats {
				printStats(cmd, c)
			}
			return nil
		},
	}
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <signature>",
		Short: "Print the stable fingerprint of a decomposed signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signature, err := readArg(args[0])
			if err != nil {
				return err
			}
			c, err := buildCoordinator(nil)
			if err != nil {
				return err
			}
			cmd.Printf("%016x\n", typetree.Fingerprint(c.Decompose(signature)))
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	var tablePath string
	cmd := &cobra.Command{
		Use:   "resolve <reference>...",
		Short: "Resolve declaration references against a symbol table",
		Long:  "Resolve declaration references of the form pkg!Path.To.Symbol (or Path.To.Symbol) against a YAML symbol table.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadSymbolTable(tablePath)
			if err != nil {
				return err
			}
			c, err := buildCoordinator(table)
			if err != nil {
				return err
			}
			for _, arg := range args {
				ref := parseReference(arg)
				res, err := c.Resolve(ref, nil)
				if err != nil {
					return err
				}
				if res.Resolved() {
					cmd.Printf("%s %s\n", okStyle.Render("✓"), res.Item.CanonicalName())
				} else {
					cmd.Printf("%s %s\n", errStyle.Render("✗"), res.ErrorMessage)
				}
			}
			if showStats {
				printStats(cmd, c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tablePath, "table", "", "path to a YAML symbol table (required)")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

func readArg(arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseReference splits "pkg!A.b" into a DeclarationReference.
func parseReference(arg string) resolver.DeclarationReference {
	var ref resolver.DeclarationReference
	rest := arg
	if i := strings.Index(arg, "!"); i >= 0 {
		ref.PackageName = arg[:i]
		rest = arg[i+1:]
	}
	ref.SymbolPath = strings.Split(rest, ".")
	return ref
}

func printTree(cmd *cobra.Command, node *typetree.PropertyNode, prefix string, isLast, isRoot bool) {
	label := node.Name
	if isRoot && label == "" {
		label = "(root)"
	}
	line := nameStyle.Render(label)
	if node.TypeAnnotation != "" && len(node.Children) == 0 {
		line += " " + typeStyle.Render(node.TypeAnnotation)
	}
	var flags []string
	if !node.Required {
		flags = append(flags, "optional")
	}
	if node.Deprecated {
		flags = append(flags, "deprecated")
	}
	if node.Truncated {
		flags = append(flags, "truncated")
	}
	if node.Cyclic {
		flags = append(flags, "cyclic")
	}
	if node.ParseFailed {
		flags = append(flags, "parse failed")
	}
	if len(flags) > 0 {
		line += " " + flagStyle.Render("["+strings.Join(flags, ", ")+"]")
	}
	if node.DefaultValue != "" {
		line += " " + typeStyle.Render("= "+node.DefaultValue)
	}

	if isRoot {
		cmd.Println(line)
	} else {
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		cmd.Println(prefix + connector + line)
	}

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, child := range node.Children {
		printTree(cmd, child, childPrefix, i == len(node.Children)-1, false)
	}
}

func printStats(cmd *cobra.Command, c *coordinator.Coordinator) {
	stats := c.Stats()
	cmd.Printf("\ntype cache:      size=%d/%d hits=%d misses=%d hitRate=%.2f\n",
		stats.TypeCache.Size, stats.TypeCache.MaxSize,
		stats.TypeCache.Hits, stats.TypeCache.Misses, stats.TypeCache.HitRate)
	cmd.Printf("reference cache: size=%d/%d hits=%d misses=%d hitRate=%.2f\n",
		stats.ReferenceCache.Size, stats.ReferenceCache.MaxSize,
		stats.ReferenceCache.Hits, stats.ReferenceCache.Misses, stats.ReferenceCache.HitRate)
}

// symbolTableFile is the YAML layout for --table: package names mapped
// to the dotted symbol paths they export.
type symbolTableFile struct {
	Packages map[string][]string `yaml:"packages"`
}

type staticItem struct {
	name string
}

func (s staticItem) CanonicalName() string { return s.name }

// staticTable is an in-memory SymbolTable backed by a YAML file.
type staticTable struct {
	symbols map[string]map[string]bool
}

func (t *staticTable) Resolve(ref resolver.DeclarationReference, _ resolver.ContextSymbol) resolver.ResolvedSymbol {
	path := strings.Join(ref.SymbolPath, ".")
	if t.symbols[ref.PackageName][path] {
		return resolver.ResolvedSymbol{Item: staticItem{name: ref.String()}}
	}
	return resolver.ResolvedSymbol{ErrorMessage: fmt.Sprintf("no symbol %q in package %q", path, ref.PackageName)}
}

func loadSymbolTable(path string) (*staticTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file symbolTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing symbol table: %w", err)
	}
	table := &staticTable{symbols: make(map[string]map[string]bool)}
	for pkg, paths := range file.Packages {
		set := make(map[string]bool, len(paths))
		for _, p := range paths {
			set[p] = true
		}
		table.symbols[pkg] = set
	}
	return table, nil
}
