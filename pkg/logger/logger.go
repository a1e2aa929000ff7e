package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup 初始化全局logrus
// 设计说明：
// 1. 全局logger足够用（进程内只有一个HTTP服务）
// 2. 生产环境输出JSON（便于采集），开发环境输出带颜色的文本
// 3. level解析失败时回退到info，不中断启动
func Setup(level, format string) {
	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	logrus.SetLevel(lv)
	logrus.SetOutput(os.Stdout)
}
