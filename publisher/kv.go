package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/brokenalarms/astro-masonry/internal/kvutil"
	"github.com/brokenalarms/astro-masonry/internal/logging"
	"github.com/brokenalarms/astro-masonry/types"
)

// Snapshot is the JSON document stored for a published layout.
type Snapshot struct {
	Name        string         `json:"name"`
	Version     int64          `json:"version"`
	Width       float64        `json:"width"`
	ColumnCount int            `json:"columnCount"`
	Strategy    types.Strategy `json:"strategy"`
	Fingerprint string         `json:"fingerprint"`
	Columns     types.Columns  `json:"columns"`
	PublishedAt time.Time      `json:"publishedAt"`
}

// NewSnapshot captures layout under name.
func NewSnapshot(name string, layout types.Layout, now time.Time) Snapshot {
	return Snapshot{
		Name:        name,
		Version:     layout.Version,
		Width:       layout.Width,
		ColumnCount: layout.ColumnCount,
		Strategy:    layout.Strategy,
		Fingerprint: FormatFingerprint(layout.Fingerprint()),
		Columns:     layout.Columns,
		PublishedAt: now.UTC(),
	}
}

// Layout converts the snapshot back into a layout.
func (s Snapshot) Layout() types.Layout {
	return types.Layout{
		Version:     s.Version,
		Width:       s.Width,
		ColumnCount: s.ColumnCount,
		Strategy:    s.Strategy,
		Columns:     s.Columns,
	}
}

// FormatFingerprint renders a layout fingerprint as fixed-width hex.
func FormatFingerprint(fp uint64) string {
	s := strconv.FormatUint(fp, 16)
	if len(s) < 16 {
		s = strings.Repeat("0", 16-len(s)) + s
	}

	return s
}

// KV publishes layouts to a NATS KV bucket.
//
// Publish skips layouts whose version is not newer than the last one written
// by this publisher, so a late publish after a restart never overwrites a
// newer snapshot.
type KV struct {
	kv        jetstream.KeyValue
	name      string
	prefix    string
	keyPrefix string // cached "prefix."

	mu          sync.Mutex
	lastVersion int64

	logger types.Logger
	now    func() time.Time
}

var _ types.VersionedPublisher = (*KV)(nil)

// NewKV creates a publisher writing to kv under "<prefix>.<name>".
//
// Parameters:
//   - kv: NATS KV bucket for layouts
//   - prefix: Key prefix (e.g., "layout")
//   - name: Layout name, usually Config.Name
//   - logger: Logger for publishing events (nil for no logging)
//
// Returns:
//   - *KV: A new publisher instance
func NewKV(kv jetstream.KeyValue, prefix, name string, logger types.Logger) *KV {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &KV{
		kv:        kv,
		name:      name,
		prefix:    prefix,
		keyPrefix: prefix + ".",
		logger:    logger,
		now:       time.Now,
	}
}

// Open ensures the layout bucket exists and returns a publisher for it.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - bucket: Bucket name
//   - ttl: Maximum age of stored layouts (0 keeps them forever)
//   - prefix: Key prefix
//   - name: Layout name
//   - logger: Logger (nil for no logging)
//
// Returns:
//   - *KV: Publisher bound to the bucket
//   - error: Bucket creation error
func Open(
	ctx context.Context,
	js jetstream.JetStream,
	bucket string,
	ttl time.Duration,
	prefix string,
	name string,
	logger types.Logger,
) (*KV, error) {
	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "masonry layout snapshots",
		History:     1,
		TTL:         ttl,
	}, 0)
	if err != nil {
		return nil, err
	}

	return NewKV(kv, prefix, name, logger), nil
}

// Key returns the KV key this publisher writes to.
func (p *KV) Key() string {
	return p.keyPrefix + p.name
}

// Publish stores layout as this publisher's snapshot.
//
// Parameters:
//   - ctx: Context for cancellation
//   - layout: Layout to store
//
// Returns:
//   - error: Marshaling or KV error
func (p *KV) Publish(ctx context.Context, layout types.Layout) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if layout.Version <= p.lastVersion {
		p.logger.Debug("skipping stale layout", "key", p.Key(), "version", layout.Version, "last_version", p.lastVersion)
		return nil
	}

	snap := NewSnapshot(p.name, layout, p.now())
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if _, err := p.kv.Put(ctx, p.Key(), data); err != nil {
		return fmt.Errorf("failed to put layout %s: %w", p.Key(), err)
	}
	p.lastVersion = layout.Version

	p.logger.Debug("layout published",
		"key", p.Key(),
		"version", layout.Version,
		"columns", layout.ColumnCount,
		"fingerprint", snap.Fingerprint)

	return nil
}

// HighestVersion returns the version of the snapshot stored under Key, or 0
// when there is none or it cannot be decoded.
func (p *KV) HighestVersion(ctx context.Context) (int64, error) {
	snap, err := p.Get(ctx, p.name)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			p.logger.Debug("no published layout found", "key", p.Key())
			return 0, nil
		}

		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			p.logger.Warn("ignoring malformed layout snapshot", "key", p.Key(), "error", err)
			return 0, nil
		}

		return 0, err
	}

	p.mu.Lock()
	if snap.Version > p.lastVersion {
		p.lastVersion = snap.Version
	}
	p.mu.Unlock()

	return snap.Version, nil
}

// Get reads the snapshot published under name.
//
// Returns:
//   - Snapshot: The stored snapshot
//   - error: jetstream.ErrKeyNotFound (wrapped) when nothing is stored,
//     a JSON error for malformed data, or a KV error
func (p *KV) Get(ctx context.Context, name string) (Snapshot, error) {
	key := p.keyPrefix + name

	entry, err := p.kv.Get(ctx, key)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get layout %s: %w", key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(entry.Value(), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode layout %s: %w", key, err)
	}

	return snap, nil
}

// List returns every layout snapshot under the prefix, sorted by name.
// Malformed entries are skipped.
//
// Returns:
//   - []Snapshot: Stored snapshots
//   - error: types.ErrNoKeysFound (wrapped) for an empty bucket, or a KV error
func (p *KV) List(ctx context.Context) ([]Snapshot, error) {
	keys, err := p.kv.Keys(ctx)
	if err != nil {
		if kvutil.IsNoKeysFound(err) {
			return nil, fmt.Errorf("bucket %s: %w", p.kv.Bucket(), types.ErrNoKeysFound)
		}

		return nil, fmt.Errorf("failed to list KV keys: %w", err)
	}

	snaps := make([]Snapshot, 0, len(keys))
	for _, key := range keys {
		// Skip keys written by other tools
		if !strings.HasPrefix(key, p.keyPrefix) {
			continue
		}

		snap, err := p.Get(ctx, strings.TrimPrefix(key, p.keyPrefix))
		if err != nil {
			p.logger.Debug("skipping unreadable layout", "key", key, "error", err)
			continue
		}
		snaps = append(snaps, snap)
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		return strings.Compare(a.Name, b.Name)
	})

	return snaps, nil
}

// Delete removes this publisher's snapshot. Deleting a missing key is not an error.
func (p *KV) Delete(ctx context.Context) error {
	if err := p.kv.Delete(ctx, p.Key()); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete layout %s: %w", p.Key(), err)
	}

	p.logger.Info("layout snapshot deleted", "key", p.Key())

	return nil
}
