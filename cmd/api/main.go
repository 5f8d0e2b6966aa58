package main

// @title Translation Bot API
// @version 1.0
// @description Telegram bot translating group chat messages between 2-3 configured languages.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /
// @schemes http
import (
	protocol "translation-bot/protocal"

	_ "translation-bot/docs"

	_ "github.com/arsmn/fiber-swagger/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Println(err)
	}
}
