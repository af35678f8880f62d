// @title Haas Adapter API
// @version 1.0.0
// @description API для опроса станков Haas по протоколу Q-команд через последовательный порт и отправки снимков в Kafka.
// @host localhost:8083
// @BasePath /api/v1/haas
package main

import "github.com/iwtcode/haasAdapter/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
