package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lock-check/internal/migration"
)

func analyze(content, app string, tables ...string) migration.Result {
	a := migration.NewAnalyzer(migration.NewMonitoredTables(tables), app, migration.DefaultMinTables)
	return a.Analyze(content)
}

const twoFieldMigration = `
from django.db import migrations, models


class Migration(migrations.Migration):
    operations = [
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
    ]
`

func TestAnalyzeBlocksTwoMonitoredTables(t *testing.T) {
	res := analyze(twoFieldMigration, "myapp", "myapp_user", "myapp_order")

	assert.Equal(t, migration.KindSchema, res.Kind)
	assert.Equal(t, 2, res.LockedCount)
	assert.Equal(t, []string{"myapp_order", "myapp_user"}, res.LockedTables)
	assert.True(t, res.ShouldBlock)
	assert.False(t, res.CriticalRisk)
}

func TestAnalyzeSingleMonitoredTablePasses(t *testing.T) {
	res := analyze(twoFieldMigration, "myapp", "myapp_user")

	assert.Equal(t, 1, res.LockedCount)
	assert.False(t, res.ShouldBlock)
}

func TestAnalyzeIgnoreDirective(t *testing.T) {
	res := analyze("# nolock\n"+twoFieldMigration, "myapp", "myapp_user", "myapp_order")

	assert.True(t, res.Ignored)
	assert.False(t, res.ShouldBlock)
	assert.Zero(t, res.LockedCount)
}

func TestAnalyzeIgnoreDirectiveVariants(t *testing.T) {
	for _, directive := range []string{
		"# nolock",
		"# NOLOCK",
		"# no-lock-check",
		"# ignore-lock-check",
		`"""nolock"""`,
		"''' nolock '''",
	} {
		res := analyze(directive+"\n"+twoFieldMigration, "myapp", "myapp_user", "myapp_order")
		assert.True(t, res.Ignored, "directive %q", directive)
	}
}

func TestAnalyzeDataOnlyMigrationNeverBlocks(t *testing.T) {
	content := `
from django.db import migrations


def forwards(apps, schema_editor):
    User = apps.get_model("myapp", "User")
    User.objects.filter(active=None).update(active=True)


class Migration(migrations.Migration):
    operations = [
        migrations.RunPython(forwards, migrations.RunPython.noop),
    ]
`
	res := analyze(content, "myapp", "myapp_user", "myapp_order")

	assert.Equal(t, migration.KindData, res.Kind)
	assert.Zero(t, res.LockedCount)
	assert.False(t, res.ShouldBlock)
}

func TestAnalyzeDataMigrationWithGuardedSQLPasses(t *testing.T) {
	content := `
class Migration(migrations.Migration):
    operations = [
        migrations.RunPython(populate, reverse_populate),
        migrations.RunSQL(
            "UPDATE myapp_user SET is_active = TRUE WHERE is_active IS NULL;",
            reverse_sql="UPDATE myapp_user SET is_active = NULL;",
        ),
    ]
`
	res := analyze(content, "myapp", "myapp_user")

	assert.Equal(t, migration.KindData, res.Kind)
	assert.Zero(t, res.LockedCount)
	assert.False(t, res.ShouldBlock)
}

func TestAnalyzeDataMigrationWithRawLocksBlocks(t *testing.T) {
	content := `
class Migration(migrations.Migration):
    operations = [
        migrations.RunPython(populate),
        migrations.RunSQL(
            "ALTER TABLE users ADD COLUMN a INT; ALTER TABLE orders ADD COLUMN b INT;",
        ),
    ]
`
	res := analyze(content, "", "users", "orders")

	assert.Equal(t, migration.KindData, res.Kind)
	assert.Equal(t, 2, res.LockedCount)
	assert.True(t, res.ShouldBlock)
}

func TestAnalyzeRunSQLListMigration(t *testing.T) {
	content := `
class Migration(migrations.Migration):
    operations = [
        migrations.RunSQL(
            [
                "ALTER TABLE myapp_user ADD COLUMN phone VARCHAR(20);",
                "CREATE INDEX idx_user_email ON myapp_user(email);",
                "UPDATE myapp_user SET phone = '+1234567890' WHERE phone IS NULL;",
            ],
            reverse_sql=[
                "DROP INDEX idx_user_email;",
                "ALTER TABLE myapp_user DROP COLUMN phone;",
            ],
        ),
        migrations.RunSQL(
            "ALTER TABLE myapp_order ADD COLUMN total_amount DECIMAL(10,2) DEFAULT 0.00;",
            reverse_sql="ALTER TABLE myapp_order DROP COLUMN total_amount;",
        ),
    ]
`
	res := analyze(content, "", "myapp_user", "myapp_order")

	assert.Equal(t, []string{"myapp_order", "myapp_user"}, res.LockedTables)
	assert.True(t, res.ShouldBlock)

	// The guarded UPDATE contributes nothing; the reverse statements are
	// never analyzed.
	kinds := map[migration.LockKind]int{}
	for _, op := range res.Operations {
		kinds[op.Lock]++
	}
	assert.Equal(t, 2, kinds[migration.LockAlterTable])
	assert.Equal(t, 1, kinds[migration.LockCreateIndex])
	assert.Zero(t, kinds[migration.LockUpdateNoWhere])
	assert.Zero(t, kinds[migration.LockDropIndex])
}

func TestAnalyzeMixedStructuralAndRawSQL(t *testing.T) {
	content := twoFieldMigration + `
        migrations.RunSQL(
            "ALTER TABLE payments ADD COLUMN verified BOOLEAN DEFAULT FALSE;",
            reverse_sql="ALTER TABLE payments DROP COLUMN verified;",
        ),
`
	res := analyze(content, "myapp", "myapp_user", "myapp_order", "payments")

	assert.Equal(t, migration.KindSchema, res.Kind)
	assert.Equal(t, 3, res.LockedCount)
	assert.True(t, res.ShouldBlock)
	assert.True(t, res.CriticalRisk)
}

func TestAnalyzeEmptyContent(t *testing.T) {
	res := analyze("", "myapp", "myapp_user")

	assert.Equal(t, migration.KindUnknown, res.Kind)
	assert.False(t, res.ShouldBlock)
	assert.Empty(t, res.Operations)
}

func TestAnalyzeCustomThreshold(t *testing.T) {
	a := migration.NewAnalyzer(migration.NewMonitoredTables([]string{"myapp_user", "myapp_order"}), "myapp", 3)

	res := a.Analyze(twoFieldMigration)

	assert.Equal(t, 2, res.LockedCount)
	assert.False(t, res.ShouldBlock)
}
