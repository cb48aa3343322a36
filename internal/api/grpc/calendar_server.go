package grpc

import (
	"context"
	"errors"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName    = "taskcalendar.v1.CalendarService"
	DispatchMethod = "/" + ServiceName + "/Dispatch"
)

// DispatchRequest - команда для конкретного календаря
type DispatchRequest struct {
	Calendar string          `json:"calendar"`
	Command  service.Command `json:"command"`
}

// Dispatcher - то, что gRPC-слою нужно от service.CalendarService
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, cmd service.Command) (service.Response, error)
}

// CalendarServiceServer - серверная сторона taskcalendar.v1.CalendarService
type CalendarServiceServer interface {
	Dispatch(ctx context.Context, req *DispatchRequest) (*service.Response, error)
}

type calendarServer struct {
	calendars Dispatcher
}

func (s *calendarServer) Dispatch(ctx context.Context, req *DispatchRequest) (*service.Response, error) {
	resp, err := s.calendars.Dispatch(ctx, req.Calendar, req.Command)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUnknownCommand), errors.Is(err, entity.ErrInvalidPayload):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, entity.ErrCalendarNotFound):
			return nil, status.Error(codes.NotFound, "calendar not found")
		default:
			return nil, status.Error(codes.Internal, err.Error())
		}
	}
	return &resp, nil
}

func dispatchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DispatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).Dispatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DispatchMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).Dispatch(ctx, req.(*DispatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var calendarServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Dispatch",
			Handler:    dispatchHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskcalendar/v1/calendar.proto",
}

// Dispatch - клиентский вызов CalendarService/Dispatch
func Dispatch(ctx context.Context, conn grpc.ClientConnInterface, req *DispatchRequest, opts ...grpc.CallOption) (*service.Response, error) {
	out := new(service.Response)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := conn.Invoke(ctx, DispatchMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
