package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"car-damage-bot/internal/domain/entity"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimate(t *testing.T) {
	out, err := run(t, "estimate", "--car", "Toyota Fortuner SUV", "--severity", "moderate", "--part", "bumper=1", "--part", "door")
	require.NoError(t, err)
	require.Contains(t, out, "category:            suv")
	require.Contains(t, out, "base sum:            11000")
	require.Contains(t, out, "estimate:            24800")
}

func TestEstimate_JSON(t *testing.T) {
	out, err := run(t, "estimate", "--severity", "minor", "--part", "Side Mirror=2", "--json")
	require.NoError(t, err)

	var b entity.CostBreakdown
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	require.Equal(t, entity.CategorySedan, b.Category)
	// 2 * 1500 * 1.0 * 1.2
	require.Equal(t, 3600, b.Total)
}

func TestEstimate_NoParts(t *testing.T) {
	out, err := run(t, "estimate", "--severity", "severe")
	require.NoError(t, err)
	require.Contains(t, out, "estimate:            0")
}

func TestEstimate_BadPart(t *testing.T) {
	_, err := run(t, "estimate", "--severity", "minor", "--part", "door=-1")
	require.ErrorContains(t, err, "count must be a positive integer")
}

func TestEstimate_RequiresSeverity(t *testing.T) {
	_, err := run(t, "estimate", "--part", "door=1")
	require.ErrorContains(t, err, "severity")
}

func TestEstimate_CustomTables(t *testing.T) {
	tables := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(tables, []byte("part_cost:\n  door: 10000\n"), 0o644))

	out, err := run(t, "estimate", "--tables", tables, "--car", "hatchback", "--severity", "minor", "--part", "door=1")
	require.NoError(t, err)
	require.Contains(t, out, "estimate:            10000")
}

func TestAssess(t *testing.T) {
	dir := t.TempDir()

	imgPath := filepath.Join(dir, "car.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 100))))
	require.NoError(t, os.WriteFile(imgPath, buf.Bytes(), 0o644))

	detPath := filepath.Join(dir, "predictions.json")
	require.NoError(t, os.WriteFile(detPath, []byte(`{"predictions":[
		{"x":30,"y":30,"width":20,"height":10,"confidence":0.8,"class":"Front-Bumper-Dent"},
		{"x":70,"y":70,"width":10,"height":10,"confidence":0.6,"class":"Door"}
	]}`), 0o644))

	outPath := filepath.Join(dir, "annotated.png")
	out, err := run(t, "assess", "--image", imgPath, "--detections", detPath, "--out", outPath, "--car", "Toyota Fortuner SUV")
	require.NoError(t, err)

	var a entity.Assessment
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	// (200 + 100) / 10000 = 0.03
	require.Equal(t, entity.SeverityModerate, a.Summary.Severity)
	require.Equal(t, 2, a.Summary.NumDamagedParts)
	require.Equal(t, 24800, a.Cost.Total)
	require.Equal(t, outPath, a.AnnotatedPath)

	_, err = os.Stat(outPath)
	require.NoError(t, err)
}

func TestAssess_InvalidDetections(t *testing.T) {
	dir := t.TempDir()
	detPath := filepath.Join(dir, "predictions.json")
	require.NoError(t, os.WriteFile(detPath, []byte(`[{"x":1,"y":1,"width":2,"confidence":0.5,"class":"door"}]`), 0o644))

	_, err := run(t, "assess", "--image", filepath.Join(dir, "car.png"), "--detections", detPath)
	require.ErrorIs(t, err, entity.ErrValidation)
	require.ErrorContains(t, err, "height: missing")
}

func TestAssess_UndecodableImage(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "car.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte("garbage"), 0o644))
	detPath := filepath.Join(dir, "predictions.json")
	require.NoError(t, os.WriteFile(detPath, []byte(`[]`), 0o644))
	outPath := filepath.Join(dir, "out.jpg")

	_, err := run(t, "assess", "--image", imgPath, "--detections", detPath, "--out", outPath)
	require.ErrorIs(t, err, entity.ErrImageIO)

	_, statErr := os.Stat(outPath)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestClassify(t *testing.T) {
	out, err := run(t, "classify", "Maruti Wagon R", "Tail-Light")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Regexp(t, `^Maruti Wagon R\s+hatchback\s+other$`, lines[1])
	require.Regexp(t, `^Tail-Light\s+unknown\s+taillight$`, lines[2])
}

func TestParseParts(t *testing.T) {
	parts, err := parseParts([]string{"bumper=2", "bumper", " door = 3 "})
	require.NoError(t, err)
	require.Equal(t, entity.DamagedParts{"bumper": 3, "door": 3}, parts)

	_, err = parseParts([]string{"=2"})
	require.Error(t, err)
}
