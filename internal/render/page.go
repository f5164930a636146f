package render

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/thedoc/internal/model"
)

// writeItem renders one documented declaration as a markdown section.
func writeItem(b *strings.Builder, item model.DocItem) {
	b.WriteString("\n### " + item.Name + "\n")

	if item.Signature != "" {
		b.WriteString("\n```\n" + item.Signature + "\n```\n")
	}
	if item.Description != "" {
		b.WriteString("\n" + item.Description + "\n")
	}

	if len(item.TypeParams) > 0 {
		b.WriteString("\n**Type Parameters:**\n\n")
		for _, p := range item.TypeParams {
			writeNamed(b, p.Name, p.Description)
		}
	}
	if len(item.Parameters) > 0 {
		b.WriteString("\n**Parameters:**\n\n")
		for _, p := range item.Parameters {
			writeNamed(b, p.Name, p.Description)
		}
	}
	if item.Returns != "" {
		b.WriteString("\n**Returns:** " + item.Returns + "\n")
	}
	if len(item.Throws) > 0 {
		b.WriteString("\n**Throws:**\n\n")
		for _, t := range item.Throws {
			if t.Type == "" {
				fmt.Fprintf(b, "- %s\n", t.Description)
				continue
			}
			writeNamed(b, t.Type, t.Description)
		}
	}
	if len(item.Cases) > 0 {
		b.WriteString("\n**Cases:**\n\n")
		for _, c := range item.Cases {
			writeNamed(b, c.Name, c.Description)
		}
	}
	if item.Remarks != "" {
		b.WriteString("\n**Remarks:**\n\n" + item.Remarks + "\n")
	}
	for _, example := range item.Examples {
		b.WriteString("\n**Example:**\n\n" + example + "\n")
	}
	if len(item.SeeAlso) > 0 {
		b.WriteString("\n**See Also:**\n\n")
		for _, ref := range item.SeeAlso {
			if ref.Target != "" && ref.Target != ref.Display {
				fmt.Fprintf(b, "- [%s](%s)\n", ref.Display, ref.Target)
			} else {
				fmt.Fprintf(b, "- %s\n", ref.Display)
			}
		}
	}
}

func writeNamed(b *strings.Builder, name, description string) {
	if description == "" {
		fmt.Fprintf(b, "- `%s`\n", name)
		return
	}
	fmt.Fprintf(b, "- `%s`: %s\n", name, description)
}
