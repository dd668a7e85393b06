package pricing

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// LoadDeliveryTable читает справочник доставки из yaml/json файла.
// Пустой путь: встроенная таблица.
func LoadDeliveryTable(path string, log *zap.Logger) (*DeliveryTable, error) {
	if path == "" {
		log.Info("Используется встроенная таблица доставки")
		return DefaultDeliveryTable(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("default_fee", defaultFallbackFee)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read delivery table %s: %w", path, err)
	}

	var t DeliveryTable
	if err := v.Unmarshal(&t); err != nil {
		return nil, fmt.Errorf("decode delivery table %s: %w", path, err)
	}
	if len(t.Districts) == 0 {
		return nil, fmt.Errorf("delivery table %s: no districts", path)
	}
	for _, d := range t.Districts {
		if d.Name == "" || d.Fee < 0 {
			return nil, fmt.Errorf("delivery table %s: invalid district entry %+v", path, d)
		}
	}

	log.Info("Таблица доставки загружена", zap.String("path", path), zap.Int("districts", len(t.Districts)))
	return &t, nil
}
