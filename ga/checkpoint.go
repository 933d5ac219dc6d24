package ga

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// matrixRecord is the serialized form of one weight matrix with its dimensions.
type matrixRecord struct {
	Rows int
	Cols int
	Data []float64 // Row-major
}

// championSaveData is what a checkpoint file holds.
type championSaveData struct {
	Weights     []matrixRecord
	Activations []string
	Score       int
	Fitness     float64
	Generation  int
}

func toRecords(ws WeightSet) []matrixRecord {
	records := make([]matrixRecord, len(ws))
	for i, m := range ws {
		rows, cols := m.Dims()
		data := make([]float64, 0, rows*cols)
		for r := 0; r < rows; r++ {
			data = append(data, mat.Row(nil, r, m)...)
		}
		records[i] = matrixRecord{Rows: rows, Cols: cols, Data: data}
	}
	return records
}

func fromRecords(records []matrixRecord) (WeightSet, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("weight set has no matrices")
	}
	ws := make(WeightSet, len(records))
	for i, rec := range records {
		// Divide rather than multiply: Rows*Cols can overflow.
		if rec.Rows <= 0 || rec.Cols <= 0 || len(rec.Data)%rec.Cols != 0 || len(rec.Data)/rec.Cols != rec.Rows {
			return nil, fmt.Errorf("matrix %d: %dx%d with %d values", i, rec.Rows, rec.Cols, len(rec.Data))
		}
		ws[i] = mat.NewDense(rec.Rows, rec.Cols, append([]float64(nil), rec.Data...))
	}
	return ws, nil
}

// EncodeWeightSet serializes ws as an ordered list of matrices with recorded dimensions.
func EncodeWeightSet(ws WeightSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(toRecords(ws)); err != nil {
		return nil, fmt.Errorf("failed to encode weight set: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeWeightSet is the inverse of EncodeWeightSet.
func DecodeWeightSet(payload []byte) (WeightSet, error) {
	var records []matrixRecord
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode weight set: %w", err)
	}
	return fromRecords(records)
}

// SaveChampion writes c to filePath, gzip compressed.
func SaveChampion(filePath string, c *Champion) error {
	if c == nil {
		return fmt.Errorf("no champion to save")
	}
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	saveData := championSaveData{
		Weights:     toRecords(c.Weights),
		Activations: c.Activations,
		Score:       c.Score,
		Fitness:     c.Fitness,
		Generation:  c.Generation,
	}
	if err := gob.NewEncoder(gzWriter).Encode(saveData); err != nil {
		_ = gzWriter.Close()
		return fmt.Errorf("failed to encode champion: %w", err)
	}
	// Close flushes the gzip footer; its error matters.
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish checkpoint '%s': %w", filePath, err)
	}
	return nil
}

// LoadChampion reads a checkpoint written by SaveChampion.
func LoadChampion(filePath string) (*Champion, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	saveData := championSaveData{}
	if err := gob.NewDecoder(gzReader).Decode(&saveData); err != nil {
		return nil, fmt.Errorf("failed to decode champion from checkpoint: %w", err)
	}
	ws, err := fromRecords(saveData.Weights)
	if err != nil {
		return nil, fmt.Errorf("checkpoint '%s': %w", filePath, err)
	}
	if len(saveData.Activations) != 0 && len(saveData.Activations) != len(ws) {
		return nil, fmt.Errorf("checkpoint '%s': %d activations for %d matrices", filePath, len(saveData.Activations), len(ws))
	}
	return &Champion{
		Weights:     ws,
		Activations: saveData.Activations,
		Score:       saveData.Score,
		Fitness:     saveData.Fitness,
		Generation:  saveData.Generation,
	}, nil
}
