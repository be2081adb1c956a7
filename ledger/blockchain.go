package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/luca-patrignani/doppelkopf/domain/doppelkopf"
)

var (
	ErrMissingSignature = errors.New("missing signature")
	ErrBadSignature     = errors.New("bad signature")
	ErrStateMismatch    = errors.New("state digest mismatch")
)

// Blockchain is the append-only record of one game.
type Blockchain struct {
	mu     sync.RWMutex
	blocks []Block
}

// NewBlockchain creates a chain holding only the genesis block. A game id is
// generated when genesis carries none.
func NewBlockchain(genesis Genesis, initialState []byte) *Blockchain {
	if genesis.GameID == "" {
		genesis.GameID = uuid.NewString()
	}
	g := Block{
		Index:     0,
		Timestamp: time.Now().Unix(),
		PrevHash:  "0",
		Genesis:   &genesis,
		StateHash: StateDigest(initialState),
	}
	g.Hash = calculateHash(g)
	return &Blockchain{blocks: []Block{g}}
}

// GameID returns the id recorded in the genesis block.
func (bc *Blockchain) GameID() string {
	return bc.Genesis().GameID
}

// Genesis returns a copy of the genesis parameters.
func (bc *Blockchain) Genesis() Genesis {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	if len(bc.blocks) == 0 || bc.blocks[0].Genesis == nil {
		return Genesis{}
	}
	return *bc.blocks[0].Genesis
}

// Append adds a signed action and the snapshot it produced. The signature
// must come from the acting seat's key for the next block index.
func (bc *Blockchain) Append(a doppelkopf.Action, sig []byte, state []byte) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if len(bc.blocks) == 0 {
		return fmt.Errorf("blockchain is empty")
	}
	latest := bc.blocks[len(bc.blocks)-1]
	next := Block{
		Index:     latest.Index + 1,
		Timestamp: time.Now().Unix(),
		PrevHash:  latest.Hash,
		Action:    &a,
		Signature: sig,
		StateHash: StateDigest(state),
	}
	next.Hash = calculateHash(next)

	if err := bc.validateBlock(next, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	bc.blocks = append(bc.blocks, next)
	return nil
}

// GetLatest returns the most recently added block.
func (bc *Blockchain) GetLatest() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return Block{}, fmt.Errorf("blockchain is empty")
	}
	return bc.blocks[len(bc.blocks)-1], nil
}

// GetByIndex retrieves a block by its index in the chain.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}
	return bc.blocks[index], nil
}

// Len is the number of blocks including genesis.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Actions returns the recorded actions in order.
func (bc *Blockchain) Actions() []doppelkopf.Action {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return nil
	}
	out := make([]doppelkopf.Action, 0, len(bc.blocks)-1)
	for _, b := range bc.blocks[1:] {
		out = append(out, *b.Action)
	}
	return out
}

// Verify checks the genesis block, the hash links and every signature.
// It does not re-run the game; see Replay.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return fmt.Errorf("empty blockchain")
	}
	genesis := bc.blocks[0]
	if genesis.PrevHash != "0" || genesis.Genesis == nil || genesis.Action != nil {
		return fmt.Errorf("invalid genesis block")
	}
	if genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("invalid genesis hash")
	}
	for i := 1; i < len(bc.blocks); i++ {
		if err := bc.validateBlock(bc.blocks[i], bc.blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// validateBlock checks current against its predecessor. Callers hold the lock.
func (bc *Blockchain) validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	if current.Action == nil || current.Genesis != nil {
		return fmt.Errorf("block %d carries no action", current.Index)
	}
	a := *current.Action
	if a.Seat < 0 || a.Seat >= doppelkopf.NumSeats {
		return fmt.Errorf("%w: seat %d", doppelkopf.ErrInvalidSeat, a.Seat)
	}
	g := bc.blocks[0].Genesis
	return VerifySignature(g.SeatKeys[a.Seat], g.GameID, current.Index, a, current.Signature)
}

// calculateHash is the sha256 over the block contents except Hash itself.
func calculateHash(block Block) string {
	genesisBytes, _ := json.Marshal(block.Genesis)
	actionBytes, _ := json.Marshal(block.Action)

	data := fmt.Sprintf("%d%d%s%s%s%x%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		string(genesisBytes),
		string(actionBytes),
		block.Signature,
		block.StateHash,
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// MarshalJSON encodes the chain as its block list.
func (bc *Blockchain) MarshalJSON() ([]byte, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return json.Marshal(bc.blocks)
}

// UnmarshalJSON decodes a block list. Call Verify before trusting it.
func (bc *Blockchain) UnmarshalJSON(data []byte) error {
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.blocks = blocks
	return nil
}

// Save writes the chain to path as indented JSON.
func (bc *Blockchain) Save(path string) error {
	data, err := json.MarshalIndent(bc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// Load reads a chain written by Save and verifies it.
func Load(path string) (*Blockchain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	bc := &Blockchain{}
	if err := json.Unmarshal(data, bc); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	if err := bc.Verify(); err != nil {
		return nil, fmt.Errorf("ledger %s: %w", path, err)
	}
	return bc, nil
}
