package scanner

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

type Diagnostics struct {
	Warnings []string
}

// Scan walks path for Python source files and splits each into numbered
// lines with the comment start located. Unreadable files become warnings,
// never a failed scan.
func Scan(path string) ([]ir.SourceFile, Diagnostics) {
	var files []ir.SourceFile
	diags := Diagnostics{}

	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".py") && !strings.HasSuffix(name, ".pyi") {
			return nil
		}
		file, serr := scanFile(p)
		if serr != nil {
			diags.Warnings = append(diags.Warnings, p+": "+serr.Error())
			return nil
		}
		files = append(files, file)
		return nil
	})

	if len(files) == 0 {
		diags.Warnings = append(diags.Warnings, "no Python source files found")
	}
	return files, diags
}

func scanFile(p string) (ir.SourceFile, error) {
	f, err := os.Open(p)
	if err != nil {
		return ir.SourceFile{}, err
	}
	defer f.Close()

	file := ir.SourceFile{Path: filepath.ToSlash(filepath.Clean(p))}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	num := 0
	for sc.Scan() {
		num++
		text := strings.TrimRight(sc.Text(), "\r")
		file.Lines = append(file.Lines, ir.SourceLine{
			Num:        num,
			Text:       text,
			CommentCol: CommentStart(text),
		})
	}
	return file, sc.Err()
}

// CommentStart returns the 1-based column of the first '#' outside a
// string literal, or 0 when the line has no comment. Quote tracking is
// line-local: a string opened on an earlier line is not seen here.
func CommentStart(text string) int {
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote == 0 {
			switch c {
			case '#':
				return i + 1
			case '\'', '"':
				quote = c
			}
			continue
		}
		if c == '\\' {
			i++
			continue
		}
		if c == quote {
			quote = 0
		}
	}
	return 0
}

// MaskStrings blanks string-literal interiors with spaces so that line
// checks never fire on quoted text. Delimiters stay, length is preserved,
// and the comment (if any) is left intact.
func MaskStrings(text string) string {
	buf := []byte(text)
	var quote byte
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if quote == 0 {
			switch c {
			case '#':
				return string(buf)
			case '\'', '"':
				quote = c
			}
			continue
		}
		if c == '\\' {
			buf[i] = ' '
			if i+1 < len(buf) {
				buf[i+1] = ' '
				i++
			}
			continue
		}
		if c == quote {
			quote = 0
			continue
		}
		buf[i] = ' '
	}
	return string(buf)
}
