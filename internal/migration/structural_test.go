package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lock-check/internal/migration"
)

func extract(content, app string, tables ...string) []migration.Operation {
	return migration.ExtractStructural(content, migration.NewMonitoredTables(tables), migration.NewResolver(app))
}

func TestExtractStructuralCreateModel(t *testing.T) {
	content := `
	migrations.CreateModel(
		name='User',
		fields=[
			('id', models.AutoField(primary_key=True)),
			('email', models.EmailField()),
		],
	),
	`

	ops := extract(content, "", "user")

	require.Len(t, ops, 1)
	assert.Equal(t, "CreateModel", ops[0].Source)
	assert.Equal(t, migration.LockCreateTable, ops[0].Lock)
	assert.Equal(t, "user", ops[0].Table)
	assert.Equal(t, "user", ops[0].ModelName)
}

func TestExtractStructuralAddFieldWithApp(t *testing.T) {
	content := `
	migrations.AddField(
		model_name="User",
		name="is_verified",
		field=models.BooleanField(default=False),
	),
	`

	ops := extract(content, "myapp", "myapp_user")

	require.Len(t, ops, 1)
	assert.Equal(t, "AddField", ops[0].Source)
	assert.Equal(t, migration.LockAddColumn, ops[0].Lock)
	assert.Equal(t, "myapp_user", ops[0].Table)
}

func TestExtractStructuralInterveningKwargs(t *testing.T) {
	// Keyword arguments may precede the target-name parameter.
	content := `
	migrations.AlterField(
		preserve_default=False,
		model_name='order',
		name='status',
		field=models.CharField(max_length=20),
	),
	`

	ops := extract(content, "shop", "shop_order")

	require.Len(t, ops, 1)
	assert.Equal(t, migration.LockAlterColumn, ops[0].Lock)
}

func TestExtractStructuralTogetherUsesNameParam(t *testing.T) {
	content := `
	migrations.AlterUniqueTogether(
		name="user",
		unique_together={("email", "tenant")},
	),
	migrations.AlterIndexTogether(
		name="order",
		index_together={("status", "created")},
	),
	`

	ops := extract(content, "myapp", "myapp_user", "myapp_order")

	require.Len(t, ops, 2)
	assert.Equal(t, migration.LockUniqueTogether, ops[0].Lock)
	assert.Equal(t, "myapp_user", ops[0].Table)
	assert.Equal(t, migration.LockIndexTogether, ops[1].Lock)
	assert.Equal(t, "myapp_order", ops[1].Table)
}

func TestExtractStructuralConstraintRisk(t *testing.T) {
	content := `
	migrations.AddConstraint(
		model_name='payment',
		constraint=models.UniqueConstraint(fields=['ref'], name='uniq_ref'),
	),
	`

	ops := extract(content, "", "payment")

	require.Len(t, ops, 1)
	assert.Equal(t, migration.LockAddConstraint, ops[0].Lock)
	assert.Equal(t, migration.RiskMedium, ops[0].Risk)
}

func TestExtractStructuralNonMonitoredSkipped(t *testing.T) {
	content := `
	migrations.DeleteModel(model_name='Session'),
	migrations.RemoveField(model_name='Profile', name='bio'),
	`

	ops := extract(content, "", "users")

	assert.Empty(t, ops)
}

func TestExtractStructuralTwoModels(t *testing.T) {
	content := `
	migrations.AddField(
		model_name="User",
		name="is_verified",
		field=models.BooleanField(default=False),
	),
	migrations.AddField(
		model_name="Order",
		name="is_processed",
		field=models.BooleanField(default=False),
	),
	`

	ops := extract(content, "myapp", "myapp_user", "myapp_order")

	require.Len(t, ops, 2)
	assert.Equal(t, "myapp_user", ops[0].Table)
	assert.Equal(t, "myapp_order", ops[1].Table)
}
