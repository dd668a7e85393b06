package migrate

import (
	"context"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto для gen_random_uuid
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы для выборок
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateUpdatedAtTrigger: true,
	}
}

type step struct {
	name string
	sql  string
}

func exec(ctx context.Context, db *gorm.DB, log *zap.Logger, steps []step) error {
	for _, s := range steps {
		if err := db.WithContext(ctx).Exec(s.sql).Error; err != nil {
			log.Error("Не удалось выполнить шаг миграции", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

var checkSteps = []step{
	{"chk_orders_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','confirmed','processing','shipped','delivered','cancelled'));`},
	{"chk_orders_amounts_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_amounts_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_amounts_non_negative
  CHECK (subtotal >= 0 AND delivery_fee >= 0 AND discount >= 0 AND total >= 0);`},
	{"chk_orders_total_consistent", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_total_consistent;
ALTER TABLE orders ADD CONSTRAINT chk_orders_total_consistent
  CHECK (total = subtotal + delivery_fee - discount);`},
	{"chk_orders_phone_format", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_phone_format;
ALTER TABLE orders ADD CONSTRAINT chk_orders_phone_format
  CHECK (phone ~ '^01[3-9][0-9]{8}$');`},
	{"chk_promo_codes_discount", `
ALTER TABLE promo_codes DROP CONSTRAINT IF EXISTS chk_promo_codes_discount;
ALTER TABLE promo_codes ADD CONSTRAINT chk_promo_codes_discount
  CHECK (discount_value > 0 AND (
    discount_type = 'fixed' OR (discount_type = 'percentage' AND discount_value <= 100)
  ));`},
	{"chk_promo_codes_usage", `
ALTER TABLE promo_codes DROP CONSTRAINT IF EXISTS chk_promo_codes_usage;
ALTER TABLE promo_codes ADD CONSTRAINT chk_promo_codes_usage
  CHECK (usage_limit >= 0 AND used_count >= 0 AND min_order_amount >= 0 AND max_discount_amount >= 0);`},
	{"chk_promo_codes_upper", `
ALTER TABLE promo_codes DROP CONSTRAINT IF EXISTS chk_promo_codes_upper;
ALTER TABLE promo_codes ADD CONSTRAINT chk_promo_codes_upper
  CHECK (code = upper(code));`},
}

var indexSteps = []step{
	{"ix_orders_status_created", `CREATE INDEX IF NOT EXISTS ix_orders_status_created ON orders (status, created_at DESC);`},
	{"ix_orders_phone_created", `CREATE INDEX IF NOT EXISTS ix_orders_phone_created ON orders (phone, created_at DESC);`},
	{"ix_promo_codes_active", `CREATE INDEX IF NOT EXISTS ix_promo_codes_active ON promo_codes (is_active) WHERE is_active;`},
}

func MigrateOrderDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных заказов")

	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц orders и promo_codes")
	if err := db.WithContext(ctx).AutoMigrate(&models.Order{}, &models.PromoCode{}); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_promo_codes_updated ON promo_codes;
CREATE TRIGGER trg_promo_codes_updated
BEFORE UPDATE ON promo_codes
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггер updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := exec(ctx, db, log, checkSteps); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		if err := exec(ctx, db, log, indexSteps); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	log.Info("Миграция базы данных заказов успешно завершена")
	return nil
}
