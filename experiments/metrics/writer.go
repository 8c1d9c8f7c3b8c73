package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// BotConfig describes one contestant of an experiment.
type BotConfig struct {
	ID          int    `yaml:"id"`
	Kind        string `yaml:"kind"`
	Tries       int    `yaml:"tries"`
	Depth       int    `yaml:"depth"`
	WinBonus    int    `yaml:"win_bonus"`
	LossBonus   int    `yaml:"loss_bonus"`
	ParityBonus int    `yaml:"parity_bonus"`
	Seed        uint64 `yaml:"seed"`
}

type GameRecord struct {
	ID       int
	BotA     int // BotConfig.ID
	BotB     int // BotConfig.ID
	WinnerID int // 1 for BotA, 2 for BotB, 0 for a draw
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for the named experiment under
// root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
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

func (w *Writer) WriteBotConfigs(configs []BotConfig) error {
	header := []string{"id", "kind", "tries", "depth", "win_bonus", "loss_bonus", "parity_bonus", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Tries),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.WinBonus),
			strconv.Itoa(config.LossBonus),
			strconv.Itoa(config.ParityBonus),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write("bot_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "bot_a", "bot_b", "winner_id", "red", "black", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.BotA),
			strconv.Itoa(record.BotB),
			strconv.Itoa(record.WinnerID),
			record.Red,
			record.Black,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "bot", "column", "tries", "duration", "episodes", "terminal_hits", "full_playouts"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Bot,
			strconv.Itoa(record.Column),
			strconv.Itoa(record.Tries),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.TerminalHits),
			strconv.Itoa(record.FullPlayouts),
		})
	}
	return w.write("move_records.csv", header, rows)
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
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
