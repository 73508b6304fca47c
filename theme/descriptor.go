// Package theme writes the index.theme descriptor of a freedesktop icon theme whose icons
// live under scalable/<dir>.
package theme

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

const FileName = "index.theme"

const (
	DefaultName    = "{{ theme_name }}"
	DefaultComment = "Flat dynamic generated icon theme"
)

type Descriptor struct {
	Name        string
	Comment     string
	Directories []string
}

const descriptorTemplate = `
[Icon Theme]
Name={{ .Name }}
Comment={{ .Comment }}
Inherits=hicolor
Example=folder

KDE-Extensions=.svg

DisplayDepth=32
LinkOverlay=link_overlay
LockOverlay=lock_overlay
ZipOverlay=zip_overlay
DesktopDefault=48
DesktopSizes=16,22,32,48,64,96,128,256
ToolbarDefault=22
ToolbarSizes=16,22,32,48
MainToolbarDefault=22
MainToolbarSizes=16,22,32,48
SmallDefault=16
SmallSizes=16,22,32,48
PanelDefault=48
PanelSizes=16,22,32,48,64,96,128,256
DialogDefault=32
DialogSizes=16,22,32,48,64,128,256
FollowsColorScheme=true

Directories={{ range $i, $d := .Dirs }}{{ if $i }},{{ end }}scalable/{{ $d }}{{ end }}
{{ range .Dirs }}
[scalable/{{ . }}]
Context={{ context . }}
Size=64
MinSize=16
MaxSize=512
Type=Scalable
{{ end }}`

// The theme name is usually itself a template placeholder, so no escaping happens here.
var tmpl = template.Must(template.New(FileName).
	Funcs(template.FuncMap{"context": ContextName}).
	Parse(descriptorTemplate))

// ContextName is the Context= value for a scalable/<dir> section.
func ContextName(dir string) string {
	switch dir {
	case "apps":
		return "Applications"
	case "mimetypes":
		return "MimeTypes"
	}
	first, size := utf8.DecodeRuneInString(dir)
	if size == 0 {
		return ""
	}
	return string(unicode.ToTitle(first)) + strings.ToLower(dir[size:])
}

// Dirs returns the directories sorted and without duplicates.
func (d Descriptor) Dirs() []string {
	dirs := slices.Clone(d.Directories)
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

func (d Descriptor) Write(w io.Writer) error {
	if d.Name == "" {
		d.Name = DefaultName
	}
	if d.Comment == "" {
		d.Comment = DefaultComment
	}

	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("could not render %s: %w", FileName, err)
	}
	return nil
}

// WriteFile writes the descriptor as index.theme inside dir.
func (d Descriptor) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create theme folder %q: %w", dir, err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create %q: %w", path, err)
	}

	if err := d.Write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close %q: %w", path, err)
	}
	return path, nil
}
