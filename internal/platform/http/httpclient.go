package http

import (
	"net"
	"net/http"
	"time"
)

// maxIdlePerHost は予測サービスなど単一ホストへの並行リクエストで接続を使い回すための上限です。
const maxIdlePerHost = 16

// NewHTTPClient は上流サービス呼び出し用のHTTPクライアントを作成します。
// http.DefaultClient にはタイムアウトが無いため、外部呼び出しには必ずこれを使います。
// timeout が 0 以下の場合は 10 秒になります。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   maxIdlePerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
