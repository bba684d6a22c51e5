package completions

import (
	"fmt"
	"regexp"
	"strings"
)

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]`)

// funcName turns a binary name into a shell function identifier.
func funcName(bin string) string {
	return nonIdent.ReplaceAllString(bin, "_")
}

func binary(commands []CommandInfo) string {
	if len(commands) == 0 || len(commands[0].Path) == 0 {
		return "routeshell"
	}
	return commands[0].Path[0]
}

// words lists what can follow a command level: subcommands then flags.
func words(cmd CommandInfo) []string {
	out := append([]string{}, cmd.Subcommands...)
	for _, f := range cmd.Flags {
		for _, name := range f.Names {
			if f.HasValue {
				name += "="
			}
			out = append(out, name)
		}
	}
	return out
}

// GenerateBash renders a bash completion script.
func GenerateBash(commands []CommandInfo) string {
	bin := binary(commands)
	fn := "_" + funcName(bin) + "_completions"

	var b strings.Builder
	fmt.Fprintf(&b, "# %s bash completion script\n\n", bin)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur prefix i\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    COMPREPLY=()\n\n")
	b.WriteString("    for ((i = COMP_CWORD - 1; i >= 0; i--)); do\n")
	b.WriteString("        prefix=\"${COMP_WORDS[*]:1:i}\"\n")
	b.WriteString("        case \"$prefix\" in\n")
	for _, cmd := range commands {
		key := strings.Join(cmd.Path[1:], " ")
		fmt.Fprintf(&b, "            %s)\n", bashQuote(key))
		fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %s -- \"$cur\"))\n", bashQuote(strings.Join(words(cmd), " ")))
		b.WriteString("                return\n")
		b.WriteString("                ;;\n")
	}
	b.WriteString("        esac\n")
	b.WriteString("    done\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, bin)
	return b.String()
}

func bashQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// GenerateZsh renders a zsh completion script.
func GenerateZsh(commands []CommandInfo) string {
	bin := binary(commands)
	fn := "_" + funcName(bin)

	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n\n", bin)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local context_=\"${(j: :)words[2,CURRENT-1]}\"\n")
	b.WriteString("    local -a opts\n\n")
	b.WriteString("    while true; do\n")
	b.WriteString("        case \"$context_\" in\n")
	for _, cmd := range commands {
		key := strings.Join(cmd.Path[1:], " ")
		fmt.Fprintf(&b, "            %s)\n", bashQuote(key))
		if len(cmd.Path) == 1 {
			fmt.Fprintf(&b, "                %s_commands\n", fn)
			b.WriteString("                return\n")
			b.WriteString("                ;;\n")
			continue
		}
		b.WriteString("                opts=(\n")
		for _, item := range zshItems(commands, cmd) {
			fmt.Fprintf(&b, "                    %s\n", item)
		}
		b.WriteString("                )\n")
		b.WriteString("                _describe 'option' opts\n")
		b.WriteString("                return\n")
		b.WriteString("                ;;\n")
	}
	b.WriteString("        esac\n")
	b.WriteString("        [[ -z \"$context_\" ]] && return\n")
	b.WriteString("        if [[ \"$context_\" == *\" \"* ]]; then\n")
	b.WriteString("            context_=\"${context_% *}\"\n")
	b.WriteString("        else\n")
	b.WriteString("            context_=\"\"\n")
	b.WriteString("        fi\n")
	b.WriteString("    done\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "%s_commands() {\n", fn)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	if len(commands) > 0 {
		for _, item := range zshItems(commands, commands[0]) {
			fmt.Fprintf(&b, "        %s\n", item)
		}
	}
	b.WriteString("    )\n")
	b.WriteString("    _describe 'command' commands\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, bin)
	return b.String()
}

func zshItems(commands []CommandInfo, cmd CommandInfo) []string {
	var out []string
	for _, sub := range cmd.Subcommands {
		summary := ""
		if child := FindCommand(commands, append(append([]string{}, cmd.Path...), sub)); child != nil {
			summary = child.Summary
		}
		out = append(out, zshItem(sub, summary))
	}
	for _, f := range cmd.Flags {
		for _, name := range f.Names {
			if f.HasValue {
				name += "="
			}
			out = append(out, zshItem(name, f.Description))
		}
	}
	return out
}

func zshItem(name, desc string) string {
	name = strings.ReplaceAll(name, ":", `\:`)
	if desc == "" {
		return bashQuote(name)
	}
	return bashQuote(name + ":" + desc)
}

// GenerateFish renders a fish completion script.
func GenerateFish(commands []CommandInfo) string {
	bin := binary(commands)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s fish completion script\n\n", bin)
	fmt.Fprintf(&b, "complete -c %s -f\n", bin)

	for _, cmd := range commands {
		cond := fishCondition(cmd)
		for _, sub := range cmd.Subcommands {
			line := fmt.Sprintf("complete -c %s -n %s -a %s", bin, fishQuote(subCondition(cmd)), fishQuote(sub))
			if child := FindCommand(commands, append(append([]string{}, cmd.Path...), sub)); child != nil && child.Summary != "" {
				line += " -d " + fishQuote(child.Summary)
			}
			b.WriteString(line + "\n")
		}
		for _, f := range cmd.Flags {
			for _, name := range f.Names {
				line := fmt.Sprintf("complete -c %s -n %s -l %s", bin, fishQuote(cond), strings.TrimPrefix(name, "--"))
				if f.HasValue {
					line += " -x"
				}
				if f.Description != "" {
					line += " -d " + fishQuote(f.Description)
				}
				b.WriteString(line + "\n")
			}
		}
	}
	return b.String()
}

// fishCondition is true once every word of cmd's path has been typed.
func fishCondition(cmd CommandInfo) string {
	if len(cmd.Path) == 1 {
		return "__fish_use_subcommand"
	}
	var parts []string
	for _, word := range cmd.Path[1:] {
		parts = append(parts, "__fish_seen_subcommand_from "+word)
	}
	return strings.Join(parts, "; and ")
}

// subCondition offers cmd's subcommands until one of them is typed.
func subCondition(cmd CommandInfo) string {
	if len(cmd.Path) == 1 {
		return "__fish_use_subcommand"
	}
	return fishCondition(cmd) + "; and not __fish_seen_subcommand_from " + strings.Join(cmd.Subcommands, " ")
}

func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
