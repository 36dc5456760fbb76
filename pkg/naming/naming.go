// Package naming builds the flat, underscore-delimited filenames that the job
// runner uses to discover datasets and archive members after a run.
//
// The encodings here are read back by the runner's discovery patterns, so every
// quirk (the repeated extension, "_" reserved as the field separator) is part of
// the contract.
package naming

import (
	"path"
	"strings"
)

const (
	// Separator delimits the fields of every constructed filename.
	Separator = "_"
	// AutoExtension is reported for archive members without a detectable extension.
	AutoExtension = "auto"
	// UnknownDBKey is used when a descriptor does not carry a genome build.
	UnknownDBKey = "?"

	validPunctuation = ".-()[] "
	replacement      = '-'
)

// compoundExtensions are matched before the single trailing extension.
var compoundExtensions = []string{".tar.gz", ".tar.bz2"}

// Sanitize replaces every rune outside letters, digits, space and ".-()[]" with '-'.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if isValidRune(r) {
			return r
		}
		return replacement
	}, name)
}

func isValidRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	default:
		return strings.ContainsRune(validPunctuation, r)
	}
}

// SplitExt splits p into stem and extension (without the leading dot).
// ".tar.gz" and ".tar.bz2" are returned as one extension. Otherwise the
// extension starts at the last dot of the final path element, unless that
// element consists only of leading dots before it (".bashrc" has none).
func SplitExt(p string) (stem, ext string) {
	for _, compound := range compoundExtensions {
		if strings.HasSuffix(p, compound) {
			return p[:len(p)-len(compound)], compound[1:]
		}
	}

	sepIndex := strings.LastIndex(p, "/")
	dotIndex := strings.LastIndex(p, ".")
	if dotIndex <= sepIndex {
		return p, ""
	}
	for i := sepIndex + 1; i < dotIndex; i++ {
		if p[i] != '.' {
			return p[:dotIndex], p[dotIndex+1:]
		}
	}
	return p, ""
}

// MultiFilename returns the runner's name for a dataset discovered at run time:
// primary_<id>_<name>_visible_<ext>. name is expected to be sanitized already.
func MultiFilename(id, name, ext string) string {
	return strings.Join([]string{"primary", id, name, "visible", ext}, Separator)
}

// CollectionName derives the collection prefix of archive members from the
// dataset name by replacing every '_' and '.' with '-'.
func CollectionName(archiveName string) string {
	return strings.NewReplacer("_", "-", ".", "-").Replace(archiveName)
}

// Member describes the output name of one archive member.
type Member struct {
	// Filename is <collection>_<base>_<dbkey>, ready to be joined onto the staging directory.
	Filename string
	// Ext is the detected extension, or AutoExtension.
	Ext string
}

// MemberFilename builds the flat output name for the archive member at memberPath.
//
// The member's base name has '_' replaced by '-'. When an extension is found the
// base becomes <stem with '.' replaced by '-'>.<ext>_<ext>; the extension is
// repeated so that it survives as a recognizable field once the db key is
// appended.
func MemberFilename(collection, memberPath, dbKey string) Member {
	base := strings.ReplaceAll(path.Base(memberPath), "_", "-")

	_, ext := SplitExt(base)
	if ext == "" {
		ext = AutoExtension
	} else {
		stem := base[:len(base)-len(ext)-1]
		base = strings.ReplaceAll(stem, ".", "-") + "." + ext + Separator + ext
	}

	if dbKey == "" {
		dbKey = UnknownDBKey
	}
	return Member{
		Filename: strings.Join([]string{collection, base, dbKey}, Separator),
		Ext:      ext,
	}
}
