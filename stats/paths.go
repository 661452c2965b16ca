package stats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theimaginaryfoundation/numenera-stats/stats/fileutils"
)

const (
	ConversationExt = ".conversation"
	QuestExt        = ".quest"
	StringTableExt  = ".stringtable"

	DefaultLang = "en"
)

// DefaultControlExts are the structural documents a string table can belong to.
var DefaultControlExts = []string{ConversationExt, QuestExt}

// LocalizedTextDir is the directory holding a language's string tables, relative to the data root.
func LocalizedTextDir(lang string) string {
	return filepath.Join("localized", lang, "text")
}

// StringTablePathFor maps data/conversations/<sub>/x.conversation to
// data/localized/<lang>/text/conversations/<sub>/x.stringtable.
// It returns "" when the path has no conversations directory.
func StringTablePathFor(conversationPath, lang string) string {
	dir, file := filepath.Split(filepath.Clean(conversationPath))
	parts := splitDir(dir)

	found := false
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "conversations" {
			parts[i] = strings.Join([]string{"localized", lang, "text", "conversations"}, "/")
			found = true
			break
		}
	}
	if !found {
		return ""
	}
	return joinDir(parts, swapExt(file, StringTableExt))
}

// ControlPathsFor lists the candidate structural documents for a string table:
// data/localized/<lang>/text/<sub>/x.stringtable maps to data/<sub>/x<ext> for each ext.
// It returns nil when the path is not under localized/<lang>/text.
func ControlPathsFor(stringTablePath, lang string, exts []string) []string {
	dir, file := filepath.Split(filepath.Clean(stringTablePath))
	parts := splitDir(dir)

	at := -1
	for i := len(parts) - 3; i >= 0; i-- {
		if parts[i] == "localized" && parts[i+1] == lang && parts[i+2] == "text" {
			at = i
			break
		}
	}
	if at < 0 {
		return nil
	}
	parts = append(parts[:at:at], parts[at+3:]...)

	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, joinDir(parts, swapExt(file, ext)))
	}
	return out
}

// ControlPathFor returns the first existing candidate of ControlPathsFor, or "".
func ControlPathFor(stringTablePath, lang string, exts []string) string {
	for _, p := range ControlPathsFor(stringTablePath, lang, exts) {
		if fileutils.FileExists(p) {
			return p
		}
	}
	return ""
}

// CollectInputs expands command-line paths into the files to analyze. Directories are
// walked recursively for files ending in ext; explicitly named files with another
// extension are reported to warn and skipped.
func CollectInputs(paths []string, ext string, warn io.Writer) ([]string, error) {
	var files []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("CollectInputs: stat %s: %w", p, err)
		}
		if !fi.IsDir() {
			if !fileutils.HasExt(p, ext) {
				fmt.Fprintf(warn, "Ignoring file %s, unexpected file type!\n", p)
				continue
			}
			files = append(files, p)
			continue
		}

		found, err := fileutils.WalkFiles(p, ext)
		if err != nil {
			return nil, fmt.Errorf("CollectInputs: %w", err)
		}
		files = append(files, found...)
	}
	return files, nil
}

func splitDir(dir string) []string {
	dir = strings.TrimSuffix(filepath.ToSlash(dir), "/")
	if dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}

func joinDir(parts []string, file string) string {
	if len(parts) == 0 {
		return file
	}
	return filepath.FromSlash(strings.Join(parts, "/") + "/" + file)
}

func swapExt(file, ext string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ext
}
