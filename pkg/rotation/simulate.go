package rotation

// Turn is one step of the deterministic rotation model: the slot that acts,
// the chunk it consumes, and the cursor after the turn.
type Turn struct {
	Worker int
	Chunk  []byte
	Cursor int
}

// Simulate returns the first n turns a scheduler with cfg will produce. The
// rotation is fully deterministic, so the model doubles as an offline
// verifier for recorded runs.
func Simulate(cfg Config, n int) ([]Turn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	turns := make([]Turn, 0, n)
	cursor := 0
	for k := 0; k < n; k++ {
		chunk := make([]byte, cfg.ChunkSize)
		for i := range chunk {
			chunk[i] = cfg.Sequence[(cursor+i)%len(cfg.Sequence)]
		}
		cursor = (cursor + cfg.ChunkSize) % len(cfg.Sequence)
		turns = append(turns, Turn{Worker: k % cfg.Workers, Chunk: chunk, Cursor: cursor})
	}
	return turns, nil
}
