package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestOSExitAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), OSExitAnalyzer, "osexit")
}

func TestFmtPrintAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), FmtPrintAnalyzer, "betconverter/internal/noisy", "betconverter/cmd/loud")
}

func TestAnalyzers(t *testing.T) {
	names := map[string]int{}
	for _, a := range analyzers() {
		names[a.Name]++
	}

	for name, n := range names {
		assert.Equal(t, 1, n, name)
	}
	assert.Contains(t, names, "osexitlint")
	assert.Contains(t, names, "fmtprintlint")
	assert.Contains(t, names, "SA1000")
	assert.Contains(t, names, "ST1005")
	assert.Contains(t, names, "printf")
}
