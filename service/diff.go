package service

import (
	"sort"

	"go-eix/pkg"
	"go-eix/version"
)

// Diff compares two databases package by package: packages only in
// newPath are added, packages only in oldPath are removed, and packages
// whose best version moved are upgraded or downgraded.
func (s *Service) Diff(oldPath, newPath string) (*DiffResult, error) {
	_, oldTree, err := readTree(oldPath)
	if err != nil {
		return nil, err
	}
	_, newTree, err := readTree(newPath)
	if err != nil {
		return nil, err
	}

	result := DiffTrees(oldTree, newTree)
	s.logger.Debug("Diff: %d added, %d removed, %d upgraded, %d downgraded",
		result.Count(DiffAdded), result.Count(DiffRemoved),
		result.Count(DiffUpgraded), result.Count(DiffDowngraded))
	return result, nil
}

// DiffTrees compares two decoded trees. See Service.Diff.
func DiffTrees(oldTree, newTree *pkg.Tree) *DiffResult {
	result := &DiffResult{}

	newTree.Walk(func(p *pkg.Package) bool {
		newBest := bestString(p)
		old := oldTree.FindPackage(p.Category, p.Name)
		if old == nil {
			result.Entries = append(result.Entries, DiffEntry{Kind: DiffAdded, Name: p.FullName(), New: newBest})
			return true
		}

		ob, nb := old.Best(), p.Best()
		if ob == nil || nb == nil {
			return true
		}
		switch c := version.Compare(ob.Version, nb.Version); {
		case c < 0:
			result.Entries = append(result.Entries, DiffEntry{Kind: DiffUpgraded, Name: p.FullName(), Old: ob.String(), New: nb.String()})
		case c > 0:
			result.Entries = append(result.Entries, DiffEntry{Kind: DiffDowngraded, Name: p.FullName(), Old: ob.String(), New: nb.String()})
		}
		return true
	})

	oldTree.Walk(func(p *pkg.Package) bool {
		if newTree.FindPackage(p.Category, p.Name) == nil {
			result.Entries = append(result.Entries, DiffEntry{Kind: DiffRemoved, Name: p.FullName(), Old: bestString(p)})
		}
		return true
	})

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Name < result.Entries[j].Name
	})
	return result
}

func bestString(p *pkg.Package) string {
	if b := p.Best(); b != nil {
		return b.String()
	}
	return ""
}

// CompareVersions parses a and b with the configured policy and returns
// -1, 0 or +1. With tilde set, revisions are ignored.
func (s *Service) CompareVersions(a, b string, tilde bool) (int, error) {
	parser := s.cfg.VersionParser()
	va, _, err := parser.Parse(a)
	if err != nil {
		return 0, err
	}
	vb, _, err := parser.Parse(b)
	if err != nil {
		return 0, err
	}
	if tilde {
		return version.CompareTilde(va, vb), nil
	}
	return version.Compare(va, vb), nil
}
