package startup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileEntry is an autostart entry stored as a single file
type FileEntry struct {
	Path   string
	Render func(command []string) []byte
}

// Enabled implements Entry
func (e FileEntry) Enabled() (bool, error) {
	_, err := os.Stat(e.Path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

// Enable implements Entry
func (e FileEntry) Enable(command []string) error {
	if err := os.MkdirAll(filepath.Dir(e.Path), 0755); err != nil {
		return err
	}
	data := e.Render(command)
	if existing, err := os.ReadFile(e.Path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	return os.WriteFile(e.Path, data, 0644)
}

// Disable implements Entry
func (e FileEntry) Disable() error {
	if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LaunchAgentPlist renders a launchd agent that runs command at login
func LaunchAgentPlist(command []string) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString("<plist version=\"1.0\">\n<dict>\n")
	fmt.Fprintf(&b, "\t<key>Label</key>\n\t<string>%s</string>\n", escape(Label))
	b.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	for _, arg := range command {
		fmt.Fprintf(&b, "\t\t<string>%s</string>\n", escape(arg))
	}
	b.WriteString("\t</array>\n")
	b.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	b.WriteString("\t<key>ProcessType</key>\n\t<string>Interactive</string>\n")
	b.WriteString("</dict>\n</plist>\n")
	return b.Bytes()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// DesktopEntry renders an XDG autostart .desktop file
func DesktopEntry(command []string) []byte {
	quoted := make([]string, len(command))
	for i, arg := range command {
		quoted[i] = quoteExec(arg)
	}

	var b bytes.Buffer
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", AppName)
	fmt.Fprintf(&b, "Exec=%s\n", strings.Join(quoted, " "))
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.Bytes()
}

// quoteExec quotes an Exec argument when it contains reserved characters
func quoteExec(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\"'\\><~|&;$*?#()`") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(arg) + `"`
}
