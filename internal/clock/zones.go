package clock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// ZoneListURL serves a JSON array of IANA zone names
	ZoneListURL = "http://worldtimeapi.org/api/timezone"

	// FetchTimeout bounds the network lookup
	FetchTimeout = 3 * time.Second
)

// Origin says where a zone list came from
type Origin int

const (
	OriginSystem Origin = iota
	OriginNetwork
)

// String returns a human-readable origin
func (o Origin) String() string {
	switch o {
	case OriginNetwork:
		return "network"
	default:
		return "system"
	}
}

// DefaultRoots are the zoneinfo directories scanned for the system list
var DefaultRoots = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
	"/var/db/timezone/zoneinfo",
}

var tzifMagic = []byte("TZif")

// Zones lists selectable time zones
type Zones struct {
	Client *http.Client
	URL    string
	Roots  []string
}

// NewZones returns a Zones with the default URL and zoneinfo roots
func NewZones() *Zones {
	return &Zones{
		Client: http.DefaultClient,
		URL:    ZoneListURL,
		Roots:  DefaultRoots,
	}
}

// List fetches the network list and falls back to the system list on any
// error or after FetchTimeout. The error explains why the fallback was used.
func (z *Zones) List(ctx context.Context) ([]string, Origin, error) {
	zones, err := z.Online(ctx)
	if err != nil {
		return z.System(), OriginSystem, err
	}
	return zones, OriginNetwork, nil
}

// Online fetches the zone list from the network
func (z *Zones) Online(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	url := z.URL
	if url == "" {
		url = ZoneListURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build zone request: %w", err)
	}

	client := z.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch zones: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch zones: %s", resp.Status)
	}

	var zones []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&zones); err != nil {
		return nil, fmt.Errorf("failed to decode zones: %w", err)
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("failed to fetch zones: empty list")
	}

	sort.Strings(zones)
	return zones, nil
}

// System lists the zones installed on this machine. It never returns an
// empty list.
func (z *Zones) System() []string {
	roots := z.Roots
	if roots == nil {
		roots = DefaultRoots
	}

	seen := make(map[string]bool)
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			name, rerr := filepath.Rel(root, path)
			if rerr != nil || name == "." {
				return nil
			}
			if d.IsDir() {
				if name == "posix" || name == "right" {
					return fs.SkipDir
				}
				return nil
			}
			if isZoneName(name) && isTZif(path) {
				seen[filepath.ToSlash(name)] = true
			}
			return nil
		})
	}

	if len(seen) == 0 {
		return []string{"UTC"}
	}

	zones := make([]string, 0, len(seen))
	for name := range seen {
		zones = append(zones, name)
	}
	sort.Strings(zones)
	return zones
}

func isZoneName(name string) bool {
	r := name[0]
	if r < 'A' || r > 'Z' {
		return false
	}
	for _, ext := range []string{".tab", ".zi", ".list"} {
		if strings.HasSuffix(name, ext) {
			return false
		}
	}
	return true
}

func isTZif(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, len(tzifMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head, tzifMagic)
}
