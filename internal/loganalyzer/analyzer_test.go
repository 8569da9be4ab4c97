package loganalyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `2024-03-01T10:00:01 INFO service started
2024-03-01T10:00:02 DEBUG loading config
2024-03-01T10:00:05 WARN slow response from upstream
2024-03-01T10:01:10 ERROR connection refused to 10.0.0.15:5432
2024-03-01T10:01:12 ERROR connection refused to 10.0.0.16:5432
2024-03-01T10:02:00 ERROR timeout waiting for job 8821
2024-03-01T10:05:30 INFO shutdown
`

func TestAnalyze_EmptyInput(t *testing.T) {
	_, err := Analyze("   \n  ")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestAnalyze_LevelCounts(t *testing.T) {
	report, err := Analyze(sampleLog)
	require.NoError(t, err)

	assert.Equal(t, 7, report.TotalLines)
	assert.Equal(t, 3, report.Levels["ERROR"])
	assert.Equal(t, 1, report.Levels["WARN"])
	assert.Equal(t, 2, report.Levels["INFO"])
	assert.Equal(t, 1, report.Levels["DEBUG"])
}

func TestAnalyze_TimestampRange(t *testing.T) {
	report, err := Analyze(sampleLog)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01T10:00:01", report.FirstTimestamp)
	assert.Equal(t, "2024-03-01T10:05:30", report.LastTimestamp)
}

func TestAnalyze_GroupsSimilarErrors(t *testing.T) {
	report, err := Analyze(sampleLog)
	require.NoError(t, err)

	require.NotEmpty(t, report.TopErrors)
	// Две строки "connection refused" отличаются только адресом и
	// должны склеиться в одну группу.
	top := report.TopErrors[0]
	assert.Equal(t, 2, top.Count)
	assert.Contains(t, top.Message, "connection refused")
	assert.Contains(t, top.Message, "<N>")
}

func TestAnalyze_WarningSynonym(t *testing.T) {
	report, err := Analyze("warning: disk almost full")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Levels["WARN"])
}

func TestAnalyze_LineWithoutLevel(t *testing.T) {
	report, err := Analyze("просто строка без уровня")
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalLines)
	assert.Equal(t, 0, report.Levels["ERROR"]+report.Levels["WARN"]+report.Levels["INFO"]+report.Levels["DEBUG"])
}

func TestFormatReport(t *testing.T) {
	report, err := Analyze(sampleLog)
	require.NoError(t, err)

	summary := FormatReport(report)
	assert.Contains(t, summary, "Строк: 7")
	assert.Contains(t, summary, "ERROR=3")
	assert.Contains(t, summary, "2024-03-01T10:00:01")
	assert.Contains(t, summary, "connection refused")
}
