package leave

import "context"

type LeaveService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (RequestResponse, error)
	Get(ctx context.Context, id string) (RequestResponse, error)
	Approve(ctx context.Context, req ApproveLeaveRequest) (ApprovalResponse, error)
	Reject(ctx context.Context, id string) (RequestResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]RequestResponse, error)
}
