package mocks

import "atoll/infras/otel"

type scopeImpl struct{}

func NewScope() otel.Scope {
	return &scopeImpl{}
}

func (s *scopeImpl) AddEvent(string) {}

func (s *scopeImpl) End() {}

func (s *scopeImpl) SetAttribute(string, any) {}

func (s *scopeImpl) SetAttributes(map[string]any) {}

func (s *scopeImpl) TraceError(error) {}

func (s *scopeImpl) TraceIfError(error) {}
