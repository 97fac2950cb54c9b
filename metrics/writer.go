package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID int
	GameMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<run id> for the records of
// one run.
func NewWriter(root, name, runID string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	dir := timestamp
	if runID != "" {
		dir = timestamp + "-" + runID
	}
	baseDir := filepath.Join(root, name, dir)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteLayerRecords(build BuildMetric) error {
	header := []string{"run_id", "area", "length", "discovered", "resolved", "trie_nodes", "expand_time", "score_time"}
	rows := make([][]string, 0, len(build.Layers))
	for _, layer := range build.Layers {
		rows = append(rows, []string{
			build.RunID,
			strconv.Itoa(build.Area),
			strconv.Itoa(layer.Length),
			strconv.Itoa(layer.Discovered),
			strconv.Itoa(layer.Resolved),
			strconv.Itoa(layer.TrieNodes),
			layer.ExpandTime.String(),
			layer.ScoreTime.String(),
		})
	}
	return w.write("layer_records.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "start", "total_moves", "failed", "duration", "moves_per_apple"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		perApple := ""
		for i, moves := range record.MovesPerApple {
			if i > 0 {
				perApple += " "
			}
			perApple += strconv.Itoa(moves)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Start),
			strconv.Itoa(record.TotalMoves),
			strconv.FormatBool(record.Failed),
			record.Duration.String(),
			perApple,
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
