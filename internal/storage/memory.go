package storage

// MemoryBackend keeps records in process memory. Tests substitute it for
// a real file so store logic runs without touching disk.
type MemoryBackend struct {
	records []Record
}

func NewMemoryBackend(records ...Record) *MemoryBackend {
	return &MemoryBackend{records: append([]Record(nil), records...)}
}

func (b *MemoryBackend) Load() ([]Record, error) {
	return append([]Record(nil), b.records...), nil
}

func (b *MemoryBackend) Save(records []Record) error {
	b.records = append([]Record(nil), records...)
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
