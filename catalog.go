package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// buildCatalog reads the dataset csv and groups its songs by genre label.
// Rows whose audio file is missing under audioDir are skipped, so the
// catalog only ever points at playable files. The returned map is never
// mutated after startup and is safe for concurrent reads.
func buildCatalog(csvPath, audioDir, baseURL string) (map[string][]Song, error) {
	fd, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	records, err := csv.NewReader(fd).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed parsing %s: %w", csvPath, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", csvPath)
	}

	filenameCol, labelCol := -1, -1
	for i, name := range records[0] {
		switch name {
		case "filename":
			filenameCol = i
		case "label":
			labelCol = i
		}
	}
	if filenameCol == -1 || labelCol == -1 {
		return nil, fmt.Errorf("dataset %s is missing the filename or label column", csvPath)
	}

	catalog := map[string][]Song{}
	skipped := 0
	for _, row := range records[1:] {
		filename := row[filenameCol]
		genre := row[labelCol]

		if _, err := os.Stat(filepath.Join(audioDir, filename)); err != nil {
			skipped++
			continue
		}

		catalog[genre] = append(catalog[genre], Song{
			Title:  filename,
			Artist: "Unknown",
			URL:    baseURL + "/static/audio/" + filename,
		})
	}

	slog.Info("catalog built", "genres", len(catalog), "skipped", skipped)
	return catalog, nil
}
