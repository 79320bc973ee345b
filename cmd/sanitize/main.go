package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/njchilds90/sanitize"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Whitelist-driven content sanitization",
		Long: `sanitize cleans untrusted input from the command line or stdin.

It applies the same allow-list policies as the library: markup is
rewritten against an explicit tag/attribute/scheme whitelist, and
filenames, search queries, and URLs get their own dedicated scrubbers.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("policy", "", "Path to a YAML policy file")
	rootCmd.PersistentFlags().Bool("strict", false, "Use the strict built-in policy")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newHTMLCmd(),
		newStripCmd(),
		newSearchCmd(),
		newFilenameCmd(),
		newPatternCmd(),
		newURLCmd(),
		newDigestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sanitize version %s\n", version)
		},
	}
}

func newHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "html [input]",
		Short: "Sanitize markup against the policy whitelist",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			p, err := resolvePolicy(cmd)
			if err != nil {
				return err
			}
			clean, err := sanitize.Sanitize(input, p)
			if err != nil {
				return err
			}
			fmt.Println(clean)
			return nil
		},
	}
}

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip [input]",
		Short: "Strip all markup, leaving plain text",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			text, err := sanitize.StripTags(input)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [input]",
		Short: "Sanitize a search query (markup-free, length-bounded)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			maxLen, _ := cmd.Flags().GetInt("max")
			fmt.Println(sanitize.SanitizeSearch(input, maxLen))
			return nil
		},
	}
	cmd.Flags().Int("max", 0, "Maximum output length (0 = default)")
	return cmd
}

func newFilenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filename [input]",
		Short: "Sanitize a filename (traversal and hostile characters)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			fmt.Println(sanitize.SanitizeFilename(input))
			return nil
		},
	}
}

func newPatternCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pattern [input]",
		Short: "Escape input for literal use inside a regexp",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			fmt.Println(sanitize.EscapePattern(input))
			return nil
		},
	}
}

func newURLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url <candidate>",
		Short: "Check a URL against the scheme allow-list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePolicy(cmd)
			if err != nil {
				return err
			}
			valid := p.IsValidURL(args[0])
			fmt.Printf("valid: %v\n", valid)
			if origin, _ := cmd.Flags().GetString("origin"); origin != "" {
				fmt.Printf("external: %v\n", p.IsExternalURL(args[0], origin))
			}
			if !valid {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().String("origin", "", "Origin host for external detection")
	return cmd
}

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest [file]",
		Short: "Print the SHA-256 content digest of a file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var content []byte
			var err error
			if len(args) > 0 {
				content, err = os.ReadFile(args[0])
			} else {
				content, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return err
			}
			fmt.Println(sanitize.Digest(content))
			return nil
		},
	}
}

// resolvePolicy picks the policy for this invocation: --policy file,
// --strict, or the default.
func resolvePolicy(cmd *cobra.Command) (*sanitize.Policy, error) {
	if path, _ := cmd.Flags().GetString("policy"); path != "" {
		return sanitize.LoadPolicyFile(path)
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		return sanitize.StrictPolicy(), nil
	}
	return sanitize.DefaultPolicy(), nil
}

// readInput joins arguments, or reads stdin when no argument is given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
