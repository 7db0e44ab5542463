package winfs

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HecaiYuan/crossfs/internal/encoding"
	"github.com/HecaiYuan/crossfs/internal/lasterr"
)

type mockNative struct {
	mock.Mock
}

func (m *mockNative) GetLogicalDrives() (uint32, error) {
	args := m.Called()

	return args.Get(0).(uint32), args.Error(1)
}

func (m *mockNative) FindFirstFile(pattern []uint16) (FindHandle, FindData, error) {
	args := m.Called(pattern)

	return args.Get(0).(FindHandle), args.Get(1).(FindData), args.Error(2)
}

func (m *mockNative) FindNextFile(handle FindHandle) (FindData, error) {
	args := m.Called(handle)

	return args.Get(0).(FindData), args.Error(1)
}

func (m *mockNative) FindClose(handle FindHandle) error {
	args := m.Called(handle)

	return args.Error(0)
}

func (m *mockNative) GetFileAttributesEx(path []uint16) (AttributeData, error) {
	args := m.Called(path)

	return args.Get(0).(AttributeData), args.Error(1)
}

func (m *mockNative) RemoveDirectory(path []uint16) error {
	args := m.Called(path)

	return args.Error(0)
}

func (m *mockNative) DeleteFile(path []uint16) error {
	args := m.Called(path)

	return args.Error(0)
}

func (m *mockNative) MoveFileReplacing(oldpath []uint16, newpath []uint16) error {
	args := m.Called(oldpath, newpath)

	return args.Error(0)
}

func (m *mockNative) CreateDirectory(path []uint16) error {
	args := m.Called(path)

	return args.Error(0)
}

// u16 converts a known-good string to UTF-16 units for mock expectations.
func u16(t *testing.T, s string) []uint16 {
	t.Helper()

	units, err := encoding.EncodeUTF16(s)
	require.NoError(t, err)

	return units
}

// newTestHandler returns a [Handler] over a fresh mock and a fresh sink.
func newTestHandler() (*Handler, *mockNative, *lasterr.Sink) {
	mockOps := new(mockNative)
	sink := &lasterr.Sink{}

	return NewHandler(mockOps, sink), mockOps, sink
}

// entry builds a [FindData] carrying just a file name, for enumeration tests.
func entry(t *testing.T, name string) FindData {
	t.Helper()

	return FindData{FileName: u16(t, name)}
}
