package database

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"go-eix/pkg"
	"go-eix/version"
)

func sampleTree(t testing.TB) *pkg.Tree {
	t.Helper()

	tree := pkg.NewTree()
	tree.AddOverlay("/var/db/repos/gentoo", "gentoo")
	tree.AddOverlay("/var/db/repos/local", "local")

	recs := []struct {
		rec     pkg.Record
		overlay int
	}{
		{pkg.Record{Category: "app-editors", Name: "vim", Version: "9.1.0-r1", Slot: "0",
			Keywords: "amd64 ~x86", IUSE: "+acl gpm python", License: "vim",
			Description: "Vim, an improved vi-style text editor", Homepage: "https://www.vim.org"}, 0},
		{pkg.Record{Category: "app-editors", Name: "vim", Version: "9.0.2167", Slot: "0",
			Keywords: "amd64 x86", IUSE: "acl gpm", License: "vim",
			Description: "Vim, an improved vi-style text editor", Homepage: "https://www.vim.org"}, 0},
		{pkg.Record{Category: "app-editors", Name: "vim", Version: "9999", Slot: "0",
			IUSE: "acl", License: "vim", Properties: "live",
			Description: "Vim (live)", Homepage: "https://www.vim.org"}, 1},
		{pkg.Record{Category: "app-editors", Name: "emacs", Version: "29.4", Slot: "29",
			Keywords: "~amd64", IUSE: "gtk X", License: "GPL-3+ FDL-1.3+",
			Description: "The extensible, customizable, self-documenting real-time display editor",
			Homepage: "https://www.gnu.org/software/emacs/"}, 0},
		{pkg.Record{Category: "dev-lang", Name: "python", Version: "3.12.4_p1", Slot: "3.12",
			Keywords: "amd64", IUSE: "ssl +ncurses", License: "PSF-2", Restrict: "test",
			Description: "An interpreted, interactive, object-oriented programming language",
			Homepage: "https://www.python.org/"}, 0},
		{pkg.Record{Category: "dev-lang", Name: "python", Version: "3.13.0_rc2", Slot: "3.13",
			Keywords: "~amd64", IUSE: "ssl", License: "PSF-2", Restrict: "test mirror",
			Description: "An interpreted, interactive, object-oriented programming language",
			Homepage: "https://www.python.org/"}, 0},
		{pkg.Record{Category: "virtual", Name: "editor", Version: "0-r7", Slot: "0",
			Keywords: "amd64 x86", Provide: "virtual/editor virtual/ed"}, 1},
		{pkg.Record{Category: "sys-libs", Name: "weird", Version: "1.0-r1.2", Slot: "0/1"}, 0},
	}

	for _, r := range recs {
		_, err := tree.AddRecord(r.rec, r.overlay, version.Parser{AcceptGarbage: true})
		require.NoError(t, err)
	}

	// garbage accepted and kept
	_, err := tree.AddRecord(pkg.Record{Category: "sys-libs", Name: "weird", Version: "2.0_beta3foo"},
		0, version.Parser{AcceptGarbage: true})
	require.NoError(t, err)

	return tree
}

func writeTree(t testing.TB, tree *pkg.Tree) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := Write(&buf, NewHeader(), tree)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func requireTreesEqual(t require.TestingT, want, got *pkg.Tree) {
	require.Equal(t, want.Overlays, got.Overlays)

	var wantCats, gotCats []string
	for _, c := range want.Categories() {
		if c.Len() > 0 {
			wantCats = append(wantCats, c.Name)
		}
	}
	for _, c := range got.Categories() {
		gotCats = append(gotCats, c.Name)
	}
	require.Equal(t, wantCats, gotCats)

	want.Walk(func(wp *pkg.Package) bool {
		gp := got.FindPackage(wp.Category, wp.Name)
		require.NotNil(t, gp, "missing %s", wp.FullName())
		requirePackagesEqual(t, wp, gp)
		return true
	})
	require.Equal(t, want.PackageCount(), got.PackageCount())
}

func requirePackagesEqual(t require.TestingT, want, got *pkg.Package) {
	name := want.FullName()
	require.Equal(t, want.Name, got.Name, name)
	require.Equal(t, want.Category, got.Category, name)
	require.Equal(t, want.Description, got.Description, name)
	require.Equal(t, want.Homepage, got.Homepage, name)
	require.Equal(t, want.License, got.License, name)
	require.Equal(t, want.Provide, got.Provide, name)
	require.Equal(t, want.IUSE, got.IUSE, name)
	require.Len(t, got.Versions, len(want.Versions), name)

	for i, wv := range want.Versions {
		gv := got.Versions[i]
		require.Equal(t, wv.String(), gv.String(), name)
		require.Equal(t, wv.Parts(), gv.Parts(), name)
		require.Zero(t, version.Compare(wv.Version, gv.Version), name)
		require.Equal(t, wv.Slot, gv.Slot, name)
		require.Equal(t, wv.Keywords, gv.Keywords, name)
		require.Equal(t, wv.IUSE, gv.IUSE, name)
		require.Equal(t, wv.Restrict, gv.Restrict, name)
		require.Equal(t, wv.Properties, gv.Properties, name)
		require.Equal(t, wv.Overlay, gv.Overlay, name)
	}
}
