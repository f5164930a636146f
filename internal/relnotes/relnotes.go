// Package relnotes builds release notes from conventional-commit history.
package relnotes

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	apperrors "git.home.luguber.info/inful/thedoc/internal/errors"
)

// Entry is one conventional commit extracted from history.
type Entry struct {
	Type        string
	Scope       string
	Description string
	Breaking    bool
	Hash        string
}

var conventional = regexp.MustCompile(`^(?P<type>[a-z]+)(?:\((?P<scope>[^)]*)\))?(?P<bang>!)?:\s*(?P<desc>.+)$`)

// ParseCommit extracts a conventional-commit entry from a commit message.
// Returns false for messages that do not follow the convention.
func ParseCommit(message string) (Entry, bool) {
	subject, _, _ := strings.Cut(message, "\n")
	m := conventional.FindStringSubmatch(strings.TrimSpace(subject))
	if m == nil {
		return Entry{}, false
	}
	entry := Entry{
		Type:        m[conventional.SubexpIndex("type")],
		Scope:       m[conventional.SubexpIndex("scope")],
		Description: m[conventional.SubexpIndex("desc")],
		Breaking:    m[conventional.SubexpIndex("bang")] == "!",
	}
	if strings.Contains(message, "BREAKING CHANGE:") {
		entry.Breaking = true
	}
	return entry, true
}

// Collect walks history from HEAD back to sinceRef (exclusive) and returns
// the conventional commits found. An empty sinceRef walks the full history.
func Collect(repoPath, sinceRef string) ([]Entry, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, apperrors.GitHistoryError(repoPath, fmt.Errorf("open repository: %w", err))
	}

	head, err := repo.Head()
	if err != nil {
		return nil, apperrors.GitHistoryError(repoPath, fmt.Errorf("resolve HEAD: %w", err))
	}

	var stop plumbing.Hash
	if sinceRef != "" {
		resolved, err := repo.ResolveRevision(plumbing.Revision(sinceRef))
		if err != nil {
			return nil, apperrors.GitHistoryError(repoPath, fmt.Errorf("resolve revision %s: %w", sinceRef, err))
		}
		stop = *resolved
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, apperrors.GitHistoryError(repoPath, fmt.Errorf("read log: %w", err))
	}

	var entries []Entry
	err = iter.ForEach(func(c *object.Commit) error {
		if sinceRef != "" && c.Hash == stop {
			return storer.ErrStop
		}
		if entry, ok := ParseCommit(c.Message); ok {
			entry.Hash = c.Hash.String()[:8]
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.GitHistoryError(repoPath, err)
	}
	return entries, nil
}

// LatestTag returns the name of the tag whose commit is newest, or "" when
// the repository has no tags.
func LatestTag(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", apperrors.GitHistoryError(repoPath, fmt.Errorf("open repository: %w", err))
	}

	iter, err := repo.Tags()
	if err != nil {
		return "", apperrors.GitHistoryError(repoPath, err)
	}

	var name string
	var newest time.Time
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tag, tagErr := repo.TagObject(hash); tagErr == nil {
			hash = tag.Target
		}
		commit, commitErr := repo.CommitObject(hash)
		if commitErr != nil {
			return nil
		}
		if commit.Committer.When.After(newest) {
			newest = commit.Committer.When
			name = ref.Name().Short()
		}
		return nil
	})
	if err != nil {
		return "", apperrors.GitHistoryError(repoPath, err)
	}
	return name, nil
}

// sectionOrder fixes the heading order in rendered notes. Commit types
// without a mapping land under Other Changes.
var sectionOrder = []struct {
	title string
	types []string
}{
	{"Features", []string{"feat"}},
	{"Bug Fixes", []string{"fix"}},
	{"Performance", []string{"perf"}},
	{"Documentation", []string{"docs"}},
	{"Other Changes", nil},
}

// Render formats entries as a markdown release-notes document.
func Render(version string, date time.Time, entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Release %s (%s)\n", version, date.Format("2006-01-02"))

	var breaking []Entry
	for _, e := range entries {
		if e.Breaking {
			breaking = append(breaking, e)
		}
	}
	if len(breaking) > 0 {
		b.WriteString("\n## Breaking Changes\n\n")
		for _, e := range breaking {
			writeEntry(&b, e)
		}
	}

	known := map[string]bool{}
	for _, section := range sectionOrder {
		for _, t := range section.types {
			known[t] = true
		}
	}

	for _, section := range sectionOrder {
		var lines []string
		for _, e := range entries {
			if e.Breaking {
				continue
			}
			match := section.types == nil && !known[e.Type]
			for _, t := range section.types {
				if e.Type == t {
					match = true
				}
			}
			if match {
				var line strings.Builder
				writeEntry(&line, e)
				lines = append(lines, line.String())
			}
		}
		if len(lines) == 0 {
			continue
		}
		sort.Strings(lines)
		b.WriteString("\n## " + section.title + "\n\n")
		for _, line := range lines {
			b.WriteString(line)
		}
	}

	if len(entries) == 0 {
		b.WriteString("\nNo conventional commits found in range.\n")
	}
	return b.String()
}

func writeEntry(b *strings.Builder, e Entry) {
	if e.Scope != "" {
		fmt.Fprintf(b, "- **%s**: %s (%s)\n", e.Scope, e.Description, e.Hash)
		return
	}
	fmt.Fprintf(b, "- %s (%s)\n", e.Description, e.Hash)
}
