package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-kessel/filterkit/internal/builtin"
)

func TestProvider_FilterProvider(t *testing.T) {
	var logs bytes.Buffer

	cfg := &Config{
		Version: "9.9.9",
		Filters: []FilterConfig{
			{Name: builtin.VersionHeaderName, Kind: KindService, Order: intPtr(10)},
			{Name: builtin.RequestIDName},
			{Name: builtin.NoopName},
		},
	}

	p := NewProvider(cfg)
	p.SetLogger(NewLoggerWithWriter(&ObservabilityConfig{LogLevel: "debug"}, &logs))

	fp, err := p.FilterProvider()
	require.NoError(t, err)

	again, err := p.FilterProvider()
	require.NoError(t, err)
	assert.Same(t, fp, again)

	products, err := fp.Filters()
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.IsType(t, &builtin.RequestIDFilter{}, products[0])
	version, ok := products[1].(*builtin.VersionHeaderFilter)
	require.True(t, ok, "expected *builtin.VersionHeaderFilter, got %T", products[1])
	assert.Equal(t, "9.9.9", version.Version)

	assert.Contains(t, logs.String(), `"event":"activation"`)
	assert.Contains(t, logs.String(), `"event":"resolution"`)
}

func TestProvider_FactoryKindActivatesOnce(t *testing.T) {
	var logs bytes.Buffer

	cfg := &Config{
		Filters: []FilterConfig{{Name: builtin.RequestIDName, Kind: KindFactory}},
	}

	p := NewProvider(cfg)
	p.SetLogger(NewLoggerWithWriter(&ObservabilityConfig{LogLevel: "debug"}, &logs))

	fp, err := p.FilterProvider()
	require.NoError(t, err)

	first, err := fp.Filters()
	require.NoError(t, err)
	second, err := fp.Filters()
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].(*builtin.RequestIDFilter).ID, second[0].(*builtin.RequestIDFilter).ID)
	assert.Equal(t, 1, strings.Count(logs.String(), `"event":"activation"`))
}

func TestProvider_CachesComponents(t *testing.T) {
	p := NewProvider(&Config{})

	types, err := p.Types()
	require.NoError(t, err)
	typesAgain, err := p.Types()
	require.NoError(t, err)
	assert.Same(t, types, typesAgain)

	container, err := p.Container()
	require.NoError(t, err)
	containerAgain, err := p.Container()
	require.NoError(t, err)
	assert.Same(t, container, containerAgain)

	assert.NotNil(t, p.Logger())
}

func TestProvider_CollectionError(t *testing.T) {
	p := NewProvider(&Config{Filters: []FilterConfig{{Name: "missing"}}})

	_, err := p.FilterProvider()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create filter collection")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithWriter(&ObservabilityConfig{LogLevel: "warn", LogFormat: "text"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "level=WARN msg=shown")

	assert.NotNil(t, NewLogger(nil))
}
