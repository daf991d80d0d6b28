package session

import "github.com/sirupsen/logrus"

// log 会话模块的日志记录器
var log = logrus.WithField("module", "session")
