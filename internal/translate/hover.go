package translate

import (
	"regexp"
	"strings"

	"tsbridge/internal/tsctypes"
)

var (
	captionRE     = regexp.MustCompile(`(?s)<caption>(.*?)</caption>\s*\r?\n(.*)`)
	codeblockRE   = regexp.MustCompile("^\\s*[~`]{3}")
	emailMatchRE  = regexp.MustCompile(`(.+)\s<([-.\w]+@[-.\w]+)>`)
	httpRE        = regexp.MustCompile(`(?i)^https?:`)
	partRE        = regexp.MustCompile(`^(\S+)\s*-?\s*`)
)

// HoverPart is one section of a rendered hover (spec.md §4.8 "Hover" ported
// from the analyzer's QuickInfo::to_hover, which emits a code-fenced
// TypeScript block, then a markdown documentation block, then a markdown
// block of rendered @tag previews).
type HoverPart struct {
	Language string // "typescript" when this part is a code block, else ""
	Value    string
}

// displayLink tracks the analyzer's "link"/"linkName"/"linkText" display
// part triple while it is being assembled (ported from the Rust Link
// struct). tsctypes.SymbolDisplayPart carries no resolved target (the
// analyzer never returns one to this bridge, since link-target
// resolution happens inside the analyzer's own symbol table, which this
// bridge treats as opaque) so only the "no target" rendering branch of
// the original ever applies here.
type displayLink struct {
	name     string
	text     string
	linkcode bool
}

// DisplayPartsToString concatenates SymbolDisplayPart text, reconstructing
// markdown links for "link"/"linkName"/"linkText" triples the way the
// analyzer's display_parts_to_string does, then passes the result through
// ReplaceLinks so any literal {@link} syntax inside plain text parts is
// also normalized (spec.md P7 idempotence extends to this path too).
func DisplayPartsToString(parts []tsctypes.SymbolDisplayPart) string {
	var out []string
	var current *displayLink

	for _, part := range parts {
		switch part.Kind {
		case "link":
			if current != nil {
				text := current.text
				if text == "" {
					text = current.name
				}
				if text != "" {
					if httpRE.MatchString(text) {
						fields := strings.SplitN(text, " ", 2)
						if len(fields) == 1 {
							out = append(out, fields[0])
						} else {
							linkText := strings.ReplaceAll(fields[1], "`", "\\`")
							if current.linkcode {
								out = append(out, "[`"+linkText+"`]("+fields[0]+")")
							} else {
								out = append(out, "["+linkText+"]("+fields[0]+")")
							}
						}
					} else {
						out = append(out, strings.ReplaceAll(text, "`", "\\`"))
					}
				}
				current = nil
			} else {
				current = &displayLink{linkcode: part.Text == "{@linkcode "}
			}
		case "linkName":
			if current != nil {
				current.name = part.Text
			}
		case "linkText":
			if current != nil {
				current.text = part.Text
			}
		default:
			out = append(out, part.Text)
		}
	}

	return ReplaceLinks(strings.Join(out, ""))
}

func makeCodeblock(text string) string {
	if codeblockRE.MatchString(text) {
		return text
	}
	return "```\n" + text + "\n```"
}

// getTagBodyText renders a tag's own text body, applying per-tag
// formatting the analyzer applies before this bridge ever sees the text
// ("example" tags become code blocks, "author" tags reformat a
// "name <email>" pair, "default" tags become code blocks, everything else
// just gets {@link} rewriting), per spec.md §4.8 and the analyzer's
// get_tag_body_text.
func getTagBodyText(tag tsctypes.JSDocTagInfo) (string, bool) {
	if tag.Text == nil {
		return "", false
	}
	text := DisplayPartsToString(tag.Text)
	switch tag.Name {
	case "example":
		if m := captionRE.FindStringSubmatch(text); m != nil {
			return m[1] + "\n\n" + makeCodeblock(m[2]), true
		}
		return makeCodeblock(text), true
	case "author":
		return emailMatchRE.ReplaceAllString(text, "$1 $2"), true
	case "default":
		return makeCodeblock(text), true
	default:
		return ReplaceLinks(text), true
	}
}

// GetTagDocumentation renders one @tag's full markdown preview, matching
// the analyzer's get_tag_documentation: "augments"/"extends"/"param"/
// "template" tags split their text into a leading identifier and a
// trailing description (via partRE, "^(\S+)\s*-?\s*"); every other tag
// just gets a "*@name*" label followed by its body text.
func GetTagDocumentation(tag tsctypes.JSDocTagInfo) string {
	switch tag.Name {
	case "augments", "extends", "param", "template":
		if tag.Text != nil {
			text := DisplayPartsToString(tag.Text)
			loc := partRE.FindStringSubmatchIndex(text)
			if loc != nil {
				param := text[loc[2]:loc[3]]
				doc := text[loc[1]:]
				label := "*@" + tag.Name + "* `" + param + "`"
				if doc == "" {
					return label
				}
				if strings.Contains(doc, "\n") {
					return label + "  \n" + ReplaceLinks(doc)
				}
				return label + " - " + ReplaceLinks(doc)
			}
		}
	}

	label := "*@" + tag.Name + "*"
	text, ok := getTagBodyText(tag)
	if !ok {
		return label
	}
	if strings.Contains(text, "\n") {
		return label + "  \n" + text
	}
	return label + " - " + text
}

// BuildHover assembles a QuickInfo into its rendered hover parts: a
// TypeScript code block for the signature, a markdown block for the
// documentation, and (if any @tags are present) a markdown block
// rendering each one, per spec.md §4.8 "Hover".
func BuildHover(info tsctypes.QuickInfo) []HoverPart {
	var parts []HoverPart
	if info.DisplayParts != nil {
		parts = append(parts, HoverPart{Language: "typescript", Value: DisplayPartsToString(info.DisplayParts)})
	}
	if info.Documentation != nil {
		parts = append(parts, HoverPart{Value: DisplayPartsToString(info.Documentation)})
	}
	if len(info.Tags) > 0 {
		previews := make([]string, 0, len(info.Tags))
		for _, tag := range info.Tags {
			previews = append(previews, GetTagDocumentation(tag))
		}
		tagsPreview := strings.Join(previews, "  \n\n")
		if tagsPreview != "" {
			parts = append(parts, HoverPart{Value: "\n\n" + tagsPreview})
		}
	}
	return parts
}
