package analyzer

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hannajonsd/addimports/parser"
)

// GitignoreParser matches paths against the patterns of a root .gitignore.
type GitignoreParser struct {
	rootDir          string
	ignorePatterns   []string
	negationPatterns []string
}

// NewGitignoreParser creates a new gitignore parser for the given directory
func NewGitignoreParser(rootDir string) *GitignoreParser {
	parser := &GitignoreParser{
		rootDir: rootDir,
	}
	parser.loadGitignore()
	return parser
}

// loadGitignore reads and parses the .gitignore file
func (gp *GitignoreParser) loadGitignore() {
	file, err := os.Open(filepath.Join(gp.rootDir, ".gitignore"))
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if pattern, ok := strings.CutPrefix(line, "!"); ok {
			gp.negationPatterns = append(gp.negationPatterns, pattern)
		} else {
			gp.ignorePatterns = append(gp.ignorePatterns, line)
		}
	}
}

// ShouldIgnore checks if a path should be ignored based on .gitignore patterns
func (gp *GitignoreParser) ShouldIgnore(path string, isDir bool) bool {
	relPath, err := filepath.Rel(gp.rootDir, path)
	if err != nil || relPath == "." {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	ignored := false
	for _, pattern := range gp.ignorePatterns {
		if gp.matchPattern(pattern, relPath, isDir) {
			ignored = true
			break
		}
	}
	if !ignored {
		return false
	}

	for _, pattern := range gp.negationPatterns {
		if gp.matchPattern(pattern, relPath, isDir) {
			return false
		}
	}
	return true
}

// matchPattern checks if a path matches a gitignore pattern. Directory
// patterns only match directories; the walker never descends into them.
func (gp *GitignoreParser) matchPattern(pattern, path string, isDir bool) bool {
	if dirPattern, ok := strings.CutSuffix(pattern, "/"); ok {
		if !isDir {
			return false
		}
		pattern = dirPattern
	}

	if anchored, ok := strings.CutPrefix(pattern, "/"); ok {
		return matchGlob(anchored, path)
	}

	if strings.Contains(pattern, "/") {
		return matchGlob(pattern, path)
	}

	return matchGlob(pattern, filepath.Base(filepath.FromSlash(path)))
}

func matchGlob(pattern, text string) bool {
	ok, err := filepath.Match(pattern, text)
	return err == nil && ok
}

// findSourceFiles lists the parseable files under root with one of the
// extensions. Ignored paths, hidden directories and skipDirs are not entered.
func findSourceFiles(ctx context.Context, root string, extensions, skipDirs []string) ([]string, error) {
	var sourceFiles []string

	gitignoreParser := NewGitignoreParser(root)

	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skip[dir] = true
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = true
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || skip[d.Name()] ||
				gitignoreParser.ShouldIgnore(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || gitignoreParser.ShouldIgnore(path, false) {
			return nil
		}

		if wanted[strings.ToLower(filepath.Ext(path))] && parser.IsSupported(path) {
			sourceFiles = append(sourceFiles, path)
		}
		return nil
	})

	return sourceFiles, err
}
