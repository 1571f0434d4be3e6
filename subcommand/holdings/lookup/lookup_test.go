// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package lookup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cu-library/holdingstoolkit/subcommand/subcommandtest"
)

var catalog = subcommandtest.Catalog{
	Symbols: map[string][]string{
		"10045193": {"CLU", "CUY"},
		"85833285": {"CUI", "CUY", "MERUC", "ZAP"},
	},
	RecordURLs: map[string]string{
		"10045193": "https://catalog.hathitrust.org/Record/102321413",
	},
	Fail: map[string]bool{"500": true},
}

func writeInput(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte(content), 0o600))
	return in, filepath.Join(dir, "out.csv")
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		args  []string
		valid bool
	}{
		{[]string{}, false},
		{[]string{"-input", "in.csv"}, false},
		{[]string{"-input", "in.csv", "-output", "out.csv"}, true},
		{[]string{"-input", "in.csv", "-output", "out.csv", "-rlf=false", "-uc=false", "-hathitrust=false"}, false},
	}
	for _, tt := range tests {
		c := Config()
		require.NoError(t, c.FlagSet.Parse(tt.args))
		err := c.ValidateFlags()
		if tt.valid {
			assert.NoError(t, err, tt.args)
		} else {
			assert.Error(t, err, tt.args)
		}
	}
}

func TestRun(t *testing.T) {
	u := subcommandtest.NewUpstream(t, catalog)
	in, out := writeInput(t, "Title,OCLC Number\nThe Winter's Tale,10045193\nThe Jungle,85833285\nAgain,10045193\n")
	c := Config()
	require.NoError(t, c.FlagSet.Parse([]string{"-input", in, "-output", out}))
	require.NoError(t, c.ValidateFlags())
	assert.True(t, c.UsesWorldCat())

	var report bytes.Buffer
	err := c.Run(context.Background(), u.Env(t, &report))
	require.NoError(t, err)
	assert.Contains(t, report.String(), "2 OCLC numbers looked up, 0 with errors.")
	// Two numbers, each with a WorldCat and a HathiTrust request.
	assert.EqualValues(t, 4, u.Requests.Load())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Title,OCLC Number,NRLF,SRLF,Other UC,Hathi Trust\n"+
		"The Winter's Tale,10045193,,,\"CLU,CUY\",https://catalog.hathitrust.org/Record/102321413\n"+
		"The Jungle,85833285,nrlf,,\"CUI,CUY,MERUC\",\n"+
		"Again,10045193,,,,\n", string(b))
}

func TestRunHathiTrustOnly(t *testing.T) {
	u := subcommandtest.NewUpstream(t, catalog)
	in, out := writeInput(t, "OCLC Number\n10045193\n")
	c := Config()
	require.NoError(t, c.FlagSet.Parse([]string{"-input", in, "-output", out, "-rlf=false", "-uc=false"}))
	require.NoError(t, c.ValidateFlags())
	assert.False(t, c.UsesWorldCat())
	require.NoError(t, c.Run(context.Background(), u.Env(t, &bytes.Buffer{})))
	assert.EqualValues(t, 1, u.Requests.Load())
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "OCLC Number,Hathi Trust\n10045193,https://catalog.hathitrust.org/Record/102321413\n", string(b))
}

func TestRunWorkbook(t *testing.T) {
	u := subcommandtest.NewUpstream(t, catalog)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xlsx")
	out := filepath.Join(dir, "out.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Title", "OCLC Number"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"The Winter's Tale", 10045193}))
	require.NoError(t, f.SaveAs(in))
	require.NoError(t, f.Close())

	c := Config()
	require.NoError(t, c.FlagSet.Parse([]string{"-input", in, "-output", out, "-rlf=false"}))
	var report bytes.Buffer
	require.NoError(t, c.Run(context.Background(), u.Env(t, &report)))
	assert.Contains(t, report.String(), "1 OCLC numbers looked up, 0 with errors.")

	got, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer got.Close()
	rows, err := got.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Title", "OCLC Number", "Other UC", "Hathi Trust"},
		{"The Winter's Tale", "10045193", "CLU,CUY", "https://catalog.hathitrust.org/Record/102321413"},
	}, rows)
}

func TestRunPartialFailure(t *testing.T) {
	u := subcommandtest.NewUpstream(t, catalog)
	in, out := writeInput(t, "OCLC Number\n500\n10045193\n")
	c := Config()
	require.NoError(t, c.FlagSet.Parse([]string{"-input", in, "-output", out}))
	var report bytes.Buffer
	err := c.Run(context.Background(), u.Env(t, &report))
	assert.Error(t, err)
	assert.Contains(t, report.String(), "2 OCLC numbers looked up, 1 with errors.")
	// The output is still written.
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "10045193,,,\"CLU,CUY\",https://catalog.hathitrust.org/Record/102321413")
}

func TestRunMissingColumn(t *testing.T) {
	u := subcommandtest.NewUpstream(t, catalog)
	in, out := writeInput(t, "Title\nThe Jungle\n")
	c := Config()
	require.NoError(t, c.FlagSet.Parse([]string{"-input", in, "-output", out}))
	err := c.Run(context.Background(), u.Env(t, &bytes.Buffer{}))
	assert.Error(t, err)
	assert.EqualValues(t, 0, u.Requests.Load())
}
