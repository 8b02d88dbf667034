// Package netsvr 以 NetSvr / NetRouter 介面隔離 HTTP 框架，預設實作為 chi。
package netsvr

import (
	"net/http"

	"github.com/zintix-labs/prnglab/server/app"
)

// NetSvr 封裝「路由行為 + 服務啟停」，只暴露給最外層組裝使用；
// 其他層只面向 NetRouter。實作本身即為 app.Component。
type NetSvr interface {
	NetRouter
	app.Component
	// Handler 回傳根 handler，供 httptest 或外部 server 掛載。
	Handler() http.Handler
}

// NetRouter 定義純路由行為，不含 Run/Shutdown，handler 與子模組無法控制 server 生命週期。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
