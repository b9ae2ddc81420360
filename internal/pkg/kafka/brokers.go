package kafka

import "strings"

// Brokers разбирает KAFKA_BROKERS вида "host1:9092, host2:9092", пропуская пустые элементы.
func Brokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if broker := strings.TrimSpace(part); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
