package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProjects(t *testing.T) {
	data := "\ufeffName, Description ,TEAM_UUID,start_date,end_date,status\n" +
		"Alpha,First,t-1,2024-01-01,2024-02-01,Active\n" +
		"\"Beta, Inc\",,t-2,,,\n"

	rows, err := ReadProjects(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ProjectRow{
		Name: "Alpha", Description: "First", TeamUUID: "t-1",
		StartDate: "2024-01-01", EndDate: "2024-02-01", Status: "active",
	}, rows[0])
	assert.Equal(t, "Beta, Inc", rows[1].Name)
	assert.Equal(t, "", rows[1].Status)
}

func TestReadTasks_ShortRowsPadded(t *testing.T) {
	data := "title,project_uuid,priority\nWrite docs,p-1\n"

	rows, err := ReadTasks(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Write docs", rows[0].Title)
	assert.Equal(t, "p-1", rows[0].ProjectUUID)
	assert.Equal(t, "", rows[0].Priority)
}

func TestReadMembers(t *testing.T) {
	rows, err := ReadMembers(strings.NewReader("team_uuid,email,role\nt-1,ana@example.com,LEAD\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, MemberRow{TeamUUID: "t-1", Email: "ana@example.com", Role: "lead"}, rows[0])
}

func TestRead_MissingRequiredColumns(t *testing.T) {
	_, err := ReadProjects(strings.NewReader("name,description\nA,B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column(s): team_uuid")

	_, err = ReadMembers(strings.NewReader("role\nlead\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team_uuid, email")
}

func TestRead_EmptyFile(t *testing.T) {
	_, err := ReadTasks(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestRead_HeaderOnly(t *testing.T) {
	rows, err := ReadMembers(strings.NewReader("team_uuid,email\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "name", ProjectColumns()[0])
	assert.Len(t, TaskColumns(), 7)
	assert.Len(t, MemberColumns(), 3)
}
