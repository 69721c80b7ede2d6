package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding a
// new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long   string   // long flag name without "--" (e.g., "expr")
	Short  string   // short flag without "-" (e.g., "e")
	Help   string   // description text
	Values []string // suggested completion values (nil = boolean/no suggestions)
	IsFile bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "expr", Short: "e", Help: "Evaluate a single expression and exit"},
	{Long: "file", Short: "f", Help: "Evaluate expressions from a file", IsFile: true},
	{Long: "output", Short: "o", Help: "Write batch results to a file", IsFile: true},
	{Long: "tui", Help: "Launch the full-screen interactive mode"},
	{Long: "lang", Help: "Message language", Values: []string{"fr", "en"}},
	{Long: "jobs", Help: "Concurrent workers in batch mode", Values: []string{"1", "2", "4", "8"}},
	{Long: "metrics-addr", Help: "Prometheus listen address"},
	{Long: "no-color", Help: "Disable colorized output"},
	{Long: "quiet", Short: "q", Help: "Minimal output for scripts"},
	{Long: "verbose", Short: "v", Help: "Log session events"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}},
}

// GenerateCompletion generates a shell completion script for the specified
// shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// allFlagSpellings returns every flag of the registry with its dashes.
func allFlagSpellings() []string {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}
	return opts
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	var caseBody strings.Builder
	for _, f := range flagRegistry {
		switch {
		case f.IsFile:
			fmt.Fprintf(&caseBody, "        --%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", f.Long)
		case len(f.Values) > 0:
			fmt.Fprintf(&caseBody, "        --%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Long, strings.Join(f.Values, " "))
		}
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for calcli
# Add this to your ~/.bashrc or ~/.bash_completion

_calcli_completions() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "${prev}" in
%s    esac

    COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
}

complete -F _calcli_completions calcli
`, caseBody.String(), strings.Join(allFlagSpellings(), " "))
	return err
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	var args strings.Builder
	for _, f := range flagRegistry {
		if f.Long == "" {
			continue
		}
		spec := "--" + f.Long
		switch {
		case f.IsFile:
			fmt.Fprintf(&args, "        '%s[%s]:file:_files'\n", spec, f.Help)
		case len(f.Values) > 0:
			fmt.Fprintf(&args, "        '%s[%s]:value:(%s)'\n", spec, f.Help, strings.Join(f.Values, " "))
		default:
			fmt.Fprintf(&args, "        '%s[%s]'\n", spec, f.Help)
		}
	}

	_, err := fmt.Fprintf(out, `#compdef calcli
# Zsh completion script for calcli

_calcli() {
    _arguments \
%s}

_calcli "$@"
`, args.String())
	return err
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	var lines strings.Builder
	for _, f := range flagRegistry {
		var parts []string
		parts = append(parts, "complete -c calcli")
		if f.Long != "" {
			parts = append(parts, "-l "+f.Long)
		}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		if len(f.Values) > 0 {
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		}
		if f.IsFile {
			parts = append(parts, "-r")
		}
		parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
		lines.WriteString(strings.Join(parts, " "))
		lines.WriteString("\n")
	}

	_, err := fmt.Fprintf(out, `# Fish completion script for calcli

%s`, lines.String())
	return err
}
