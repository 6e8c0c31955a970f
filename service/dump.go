package service

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"go-eix/pkg"
)

// Dump output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// DumpDocument is a fully decoded database in a serializable shape.
type DumpDocument struct {
	FormatVersion uint64         `yaml:"format_version"`
	Overlays      []pkg.Overlay  `yaml:"overlays"`
	Categories    []DumpCategory `yaml:"categories"`
}

// DumpCategory is one category of a DumpDocument.
type DumpCategory struct {
	Name     string        `yaml:"name"`
	Packages []DumpPackage `yaml:"packages"`
}

// DumpPackage is one package of a DumpDocument.
type DumpPackage struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Homepage    string        `yaml:"homepage,omitempty"`
	License     string        `yaml:"license,omitempty"`
	Provide     string        `yaml:"provide,omitempty"`
	IUSE        []string      `yaml:"iuse,omitempty,flow"`
	Versions    []DumpVersion `yaml:"versions"`
}

// DumpVersion is one version of a DumpPackage.
type DumpVersion struct {
	Version    string   `yaml:"version"`
	Slot       string   `yaml:"slot"`
	Overlay    int      `yaml:"overlay"`
	Keywords   string   `yaml:"keywords,omitempty"`
	IUSE       []string `yaml:"iuse,omitempty,flow"`
	Restrict   string   `yaml:"restrict,omitempty"`
	Properties string   `yaml:"properties,omitempty"`
}

// Dump decodes the whole database at path.
func (s *Service) Dump(path string) (*DumpDocument, error) {
	hdr, tree, err := readTree(s.databasePath(path))
	if err != nil {
		return nil, err
	}

	doc := &DumpDocument{
		FormatVersion: hdr.FormatVersion,
		Overlays:      hdr.Overlays,
	}
	for _, c := range tree.Categories() {
		dc := DumpCategory{Name: c.Name}
		for _, p := range c.Packages() {
			dp := DumpPackage{
				Name:        p.Name,
				Description: p.Description,
				Homepage:    p.Homepage,
				License:     p.License,
				Provide:     p.Provide,
				IUSE:        p.IUSE,
			}
			for _, v := range p.Versions {
				dp.Versions = append(dp.Versions, DumpVersion{
					Version:    v.String(),
					Slot:       pkg.DisplaySlot(v.Slot),
					Overlay:    v.Overlay,
					Keywords:   v.Keywords,
					IUSE:       v.IUSE,
					Restrict:   v.Restrict.String(),
					Properties: v.Properties.String(),
				})
			}
			dc.Packages = append(dc.Packages, dp)
		}
		doc.Categories = append(doc.Categories, dc)
	}

	s.logger.Debug("Dumped %d categories of %s", len(doc.Categories), s.databasePath(path))
	return doc, nil
}

// Encode writes the document to w in the given format.
func (d *DumpDocument) Encode(w io.Writer, format string) error {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatText, "":
		return d.encodeText(w)
	default:
		return fmt.Errorf("unknown dump format %q (want %s or %s)", format, FormatText, FormatYAML)
	}
}

func (d *DumpDocument) encodeText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "format %d\n", d.FormatVersion)
	for i, o := range d.Overlays {
		fmt.Fprintf(&sb, "overlay [%d] %s %s\n", i, o.Path, o.Label)
	}
	for _, c := range d.Categories {
		for _, p := range c.Packages {
			fmt.Fprintf(&sb, "%s/%s\n", c.Name, p.Name)
			writeField(&sb, "description", p.Description)
			writeField(&sb, "homepage", p.Homepage)
			writeField(&sb, "license", p.License)
			writeField(&sb, "provide", p.Provide)
			writeField(&sb, "iuse", strings.Join(p.IUSE, " "))
			for _, v := range p.Versions {
				fmt.Fprintf(&sb, "  %s [%d] slot=%s", v.Version, v.Overlay, v.Slot)
				if v.Keywords != "" {
					fmt.Fprintf(&sb, " keywords=%q", v.Keywords)
				}
				if v.Restrict != "" {
					fmt.Fprintf(&sb, " restrict=%q", v.Restrict)
				}
				if v.Properties != "" {
					fmt.Fprintf(&sb, " properties=%q", v.Properties)
				}
				sb.WriteByte('\n')
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeField(sb *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(sb, "  %s: %s\n", name, value)
	}
}
