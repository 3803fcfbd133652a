package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a command and returns output and error.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// withStoreDir points the CLI at a fresh dir-backed store via a config file
// written into a temp working directory.
func withStoreDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "formbuilder.yaml")
	storePath := filepath.Join(dir, "store")
	content := "store:\n  backend: dir\n  path: " + storePath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	prev := cfgFile
	cfgFile = cfgPath
	t.Cleanup(func() { cfgFile = prev })

	prevQuiet := quiet
	quiet = true
	t.Cleanup(func() { quiet = prevQuiet })

	return dir
}

func writeSchemaFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const contactSchema = `{
  "name": "Contact",
  "fields": [
    {"id": "name", "type": "text", "label": "Name", "validation": {"required": true}},
    {"id": "email", "type": "text", "label": "Email", "validation": {"email": true}}
  ]
}`

func TestRootCommand_Help(t *testing.T) {
	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "formbuilder")
	assert.Contains(t, output, "Available Commands")
	assert.Contains(t, output, "list")
	assert.Contains(t, output, "save")
	assert.Contains(t, output, "fill")
	assert.Contains(t, output, "render")
	assert.Contains(t, output, "export")
	assert.Contains(t, output, "import")
	assert.Contains(t, output, "openapi")
	assert.Contains(t, output, "watch")
	assert.Contains(t, output, "version")
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "formbuilder")
	assert.Contains(t, output, "Go Version")
}

func TestSaveAndListCommands(t *testing.T) {
	dir := withStoreDir(t)
	path := writeSchemaFile(t, dir, "contact.json", contactSchema)

	_, err := executeCommand(rootCmd, "save", path)
	require.NoError(t, err)

	output, err := executeCommand(rootCmd, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Contact")
	assert.Contains(t, output, "2") // field count
}

func TestSaveCommand_DuplicateName(t *testing.T) {
	dir := withStoreDir(t)
	path := writeSchemaFile(t, dir, "contact.json", contactSchema)

	_, err := executeCommand(rootCmd, "save", path)
	require.NoError(t, err)

	_, err = executeCommand(rootCmd, "save", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name already exists")
}

func TestSaveCommand_InvalidSchema(t *testing.T) {
	dir := withStoreDir(t)
	path := writeSchemaFile(t, dir, "empty.json", `{"name": "Empty", "fields": []}`)

	_, err := executeCommand(rootCmd, "save", path)
	require.Error(t, err)
}

func TestDeleteCommand(t *testing.T) {
	dir := withStoreDir(t)
	path := writeSchemaFile(t, dir, "contact.json", contactSchema)

	_, err := executeCommand(rootCmd, "save", path)
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	gateway, cleanup, err := openGateway(cfg)
	require.NoError(t, err)
	defer cleanup()

	schemas := gateway.LoadAll()
	require.Len(t, schemas, 1)

	_, err = executeCommand(rootCmd, "delete", schemas[0].ID)
	require.NoError(t, err)
	assert.Empty(t, gateway.LoadAll())

	_, err = executeCommand(rootCmd, "delete", "missing-id")
	require.Error(t, err)
}

func TestExportAndImportCommands(t *testing.T) {
	dir := withStoreDir(t)
	path := writeSchemaFile(t, dir, "contact.json", contactSchema)

	_, err := executeCommand(rootCmd, "save", path)
	require.NoError(t, err)

	exportPath := filepath.Join(dir, "backup.yaml")
	_, err = executeCommand(rootCmd, "export", exportPath)
	require.NoError(t, err)
	require.FileExists(t, exportPath)

	// fresh store, then import the backup
	dir2 := withStoreDir(t)
	importPath := filepath.Join(dir2, "backup.yaml")
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(importPath, data, 0o644))

	_, err = executeCommand(rootCmd, "import", importPath)
	require.NoError(t, err)

	output, err := executeCommand(rootCmd, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Contact")
}

func TestRenderCommand(t *testing.T) {
	dir := withStoreDir(t)
	path := writeSchemaFile(t, dir, "contact.json", contactSchema)

	_, err := executeCommand(rootCmd, "save", path)
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	gateway, cleanup, err := openGateway(cfg)
	require.NoError(t, err)
	defer cleanup()
	schemas := gateway.LoadAll()
	require.Len(t, schemas, 1)

	outPath := filepath.Join(dir, "form.html")
	_, err = executeCommand(rootCmd, "render", schemas[0].ID, "-o", outPath)
	require.NoError(t, err)

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Contact")
	assert.Contains(t, string(html), `type="email"`)
}

func TestOpenAPICommand_ListsOperations(t *testing.T) {
	dir := withStoreDir(t)
	specPath := writeSchemaFile(t, dir, "api.yaml", `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /users:
    post:
      operationId: createUser
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: {type: string}
      responses:
        "201": {description: created}
`)

	output, err := executeCommand(rootCmd, "openapi", specPath)
	require.NoError(t, err)
	assert.Contains(t, output, "createUser")

	_, err = executeCommand(rootCmd, "openapi", specPath, "createUser")
	require.NoError(t, err)

	listOut, err := executeCommand(rootCmd, "list")
	require.NoError(t, err)
	assert.Contains(t, listOut, "createUser")
}
