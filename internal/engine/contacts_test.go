package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var fixedClock = MockClock{CurrentTime: time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)}

const addressBook = `BEGIN:VCARD
VERSION:4.0
FN:Alice Martin
BDAY:2000-01-15
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Doe;John;;;
BDAY:2010-03-20
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Bob Stone
BDAY:19900228
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Year
BDAY:--05-04
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Not Born Yet
BDAY:2030-01-01
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Birthday
END:VCARD
`

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestContactReader_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(addressBook), 0o600))

	reader := &engine.ContactReader{Clock: fixedClock}
	contacts, err := reader.Read(context.Background(), path, "", "")
	require.NoError(t, err)

	// Oldest first; year-less, future and missing birthdays are skipped.
	require.Len(t, contacts, 3)

	assert.Equal(t, "Bob Stone", contacts[0].Name)
	assert.Equal(t, calendar.Of(1990, 2, 28), contacts[0].DateOfBirth)
	assert.Equal(t, engine.Difference{Years: 34, Days: 20}, contacts[0].Age)

	assert.Equal(t, "Alice Martin", contacts[1].Name)
	assert.Equal(t, engine.Difference{Years: 24, Months: 2, Days: 5}, contacts[1].Age)

	// N is used when FN is missing.
	assert.Equal(t, "John Doe", contacts[2].Name)
	assert.Equal(t, engine.Difference{Years: 14}, contacts[2].Age)

	for _, c := range contacts {
		assert.Len(t, c.UID, 2*config.UIDHashLength, "UID should be a hex encoded hash")
	}
}

func TestContactReader_StableUID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(addressBook), 0o600))

	reader := &engine.ContactReader{Clock: fixedClock}
	first, err := reader.Read(context.Background(), path, "", "")
	require.NoError(t, err)

	later := &engine.ContactReader{Clock: MockClock{CurrentTime: fixedClock.CurrentTime.AddDate(1, 0, 0)}}
	second, err := later.Read(context.Background(), path, "", "")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].UID, second[i].UID, "UID must not depend on the reference day")
	}
}

func TestContactReader_Remote(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://dav.example.com/book.vcf", "alice", "secret").
		Return(io.NopCloser(strings.NewReader(addressBook)), nil)

	reader := &engine.ContactReader{Clock: fixedClock, Fetcher: mockFetcher}
	contacts, err := reader.Read(context.Background(), "https://dav.example.com/book.vcf", "alice", "secret")

	require.NoError(t, err)
	assert.Len(t, contacts, 3)
	mockFetcher.AssertExpectations(t)
}

func TestContactReader_Errors(t *testing.T) {
	t.Run("Fetcher failure", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		reader := &engine.ContactReader{Clock: fixedClock, Fetcher: mockFetcher}
		_, err := reader.Read(context.Background(), "http://example.com", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrVCardOpen)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Missing fetcher", func(t *testing.T) {
		reader := &engine.ContactReader{Clock: fixedClock}
		_, err := reader.Read(context.Background(), "HTTPS://example.com", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrFetcherMissing)
	})

	t.Run("Missing file", func(t *testing.T) {
		reader := &engine.ContactReader{Clock: fixedClock}
		_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "nope.vcf"), "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "contacts.vcf")
		require.NoError(t, os.WriteFile(path, []byte(addressBook), 0o600))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		reader := &engine.ContactReader{Clock: fixedClock}
		_, err := reader.Read(ctx, path, "", "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestContactReader_EmptySource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.vcf")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	reader := &engine.ContactReader{Clock: fixedClock}
	contacts, err := reader.Read(context.Background(), path, "", "")

	require.NoError(t, err)
	assert.Empty(t, contacts)
}
