package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/vpmsync/pkg/model"
)

func TestParseList(t *testing.T) {
	input := strings.Join([]string{
		"# exported repositories",
		"",
		"https://a.example.com/vpm.json",
		"  https://b.example.com/index.json   Authorization=Bearer%20abc X-Extra=1  ",
		"not-a-url",
		"https://c.example.com/vpm.json BrokenHeader",
		"https://d.example.com/vpm.json X-Dup=1 x-dup=2",
		"https://e.example.com/vpm.json Bad:Name=1",
		"https://f.example.com/vpm.json X-Eq=a=b",
	}, "\n")

	list, err := ParseList(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, list.Repositories, 3)
	assert.Equal(t, "https://a.example.com/vpm.json", list.Repositories[0].URL.String())
	assert.Empty(t, list.Repositories[0].Headers)

	assert.Equal(t, "https://b.example.com/index.json", list.Repositories[1].URL.String())
	assert.Equal(t, model.Headers{
		{Name: "Authorization", Value: "Bearer abc"},
		{Name: "X-Extra", Value: "1"},
	}, list.Repositories[1].Headers)

	assert.Equal(t, model.Headers{{Name: "X-Eq", Value: "a=b"}}, list.Repositories[2].Headers)

	assert.Equal(t, []string{
		"not-a-url",
		"https://c.example.com/vpm.json BrokenHeader",
		"https://d.example.com/vpm.json X-Dup=1 x-dup=2",
		"https://e.example.com/vpm.json Bad:Name=1",
	}, list.UnparseableLines)
}

func TestParseList_Empty(t *testing.T) {
	list, err := ParseList(strings.NewReader("\n# nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, list.Repositories)
	assert.Empty(t, list.UnparseableLines)
}

func TestFormatList_RoundTrip(t *testing.T) {
	descs := []model.RepositoryDescriptor{
		{URL: mustURL(t, "https://a.example.com/vpm.json")},
		{
			URL: mustURL(t, "https://b.example.com/index.json?download"),
			Headers: model.Headers{
				{Name: "Authorization", Value: "Bearer abc def"},
				{Name: "X-Percent", Value: "100%#"},
			},
		},
		{},
	}

	text := FormatList(descs)
	assert.Equal(t, 2, strings.Count(text, "\n"))

	list, err := ParseList(strings.NewReader(text))
	require.NoError(t, err)
	require.Empty(t, list.UnparseableLines)
	require.Len(t, list.Repositories, 2)
	assert.Equal(t, descs[0].URL.String(), list.Repositories[0].URL.String())
	assert.Equal(t, descs[1].URL.String(), list.Repositories[1].URL.String())
	assert.Equal(t, descs[1].Headers, list.Repositories[1].Headers)
}
