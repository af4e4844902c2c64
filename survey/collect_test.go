package survey

import (
	"net/url"
	"testing"

	"github.com/mbolis/interview-survey/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectKeepsOnlyDefinedFields(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	answers := Collect(def.Fields, url.Values{
		model.FieldDepartment: {" 研發部 "},
		model.FieldPerson:     {"王小明"},
		"core_flows":          {"登入 主功能操作 送出", " ", "查詢→檢視→匯出", "自訂"},
		"core_flows_other":    {" 登入主功能操作送出 "},
		"unknown":             {"ignored"},
	})

	assert.Equal(t, model.NaturalKey{Department: "研發部", Person: "王小明"}, answers.Key())
	assert.Equal(t, []string{"登入→主功能操作→送出", "查詢→檢視→匯出", "自訂"}, answers.Selected("core_flows"))
	assert.Equal(t, "登入主功能操作送出", answers.Text("core_flows_other"), "other values stay verbatim")
	assert.False(t, answers.Has("unknown"))
	assert.True(t, answers.Has("test_types"), "unanswered selections are stored empty")
	assert.Empty(t, answers.Selected("test_types"))
}

func TestCollectReplacesChipSeparator(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	answers := Collect(def.Fields, url.Values{
		"core_flows":       {"自訂；流程"},
		"core_flows_other": {"甲；乙"},
	})
	assert.Equal(t, []string{"自訂，流程"}, answers.Selected("core_flows"))
	assert.Equal(t, "甲，乙", answers.Text("core_flows_other"))
}
