package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements Calendar using a local text file of extra holidays,
// e.g. once-off proclaimed public holidays that the statutory rules do not know.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	data     map[int][]Holiday // key: year
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]Holiday),
	}
}

// Load loads holiday data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	data := make(map[int][]Holiday)
	count := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD [name]
		// Example: 2024-05-29 General election day
		parts := strings.SplitN(line, " ", 2)

		date, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			fc.logger.Warn("Failed to parse holiday date",
				zap.String("line", line),
				zap.Error(err))
			continue
		}

		name := "Public holiday"
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			name = strings.TrimSpace(parts[1])
		}

		data[date.Year()] = append(data[date.Year()], Holiday{Date: date, Name: name})
		count++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fc.data = data

	fc.logger.Info("Holiday file loaded",
		zap.String("file", fc.filePath),
		zap.Int("holidays", count),
		zap.Int("years", len(data)))

	return nil
}

// Holidays returns the extra holidays listed for the year
func (fc *FileCalendar) Holidays(year int) []Holiday {
	listed := fc.data[year]
	out := make([]Holiday, len(listed))
	copy(out, listed)
	return out
}
