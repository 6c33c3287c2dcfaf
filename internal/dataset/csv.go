package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// WriteFile writes rows as a CSV table at path, columns in Headers order.
// List-valued cells are encoded as JSON arrays; the maintainers cell holds
// the integer codes from table instead of usernames. The file is written
// once, after the whole crawl, so an aborted run leaves no partial output.
func WriteFile(path string, rows []Row, table *MaintainerCodes) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record, err := encodeRow(row, table)
		if err != nil {
			return fmt.Errorf("encode row %s: %w", row.Name, err)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func encodeRow(row Row, table *MaintainerCodes) ([]string, error) {
	keywords, err := jsonCell(emptyIfNil(row.Keywords))
	if err != nil {
		return nil, err
	}
	deps, err := jsonCell(emptyIfNil(row.Dependencies))
	if err != nil {
		return nil, err
	}
	devDeps, err := jsonCell(emptyIfNil(row.DevDependencies))
	if err != nil {
		return nil, err
	}
	maintainers, err := jsonCell(table.Codes(row.Maintainers))
	if err != nil {
		return nil, err
	}

	return []string{
		row.Name,
		row.Version,
		row.Description,
		keywords,
		deps,
		devDeps,
		formatFloat(row.CommunityInterest),
		formatFloat(row.DownloadsCount),
		formatFloat(row.DownloadsAcceleration),
		strconv.Itoa(row.DependentsCount),
		formatFloat(row.Quality),
		formatFloat(row.Popularity),
		formatFloat(row.Maintenance),
		maintainers,
	}, nil
}

func jsonCell(v any) (string, error) {
	data, err := json.Marshal(v)
	return string(data), err
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
