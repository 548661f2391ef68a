package instrument

import "github.com/go-gl/mathgl/mgl64"

// Reference instrument ids.
const (
	LWAC    = "lwac"
	RWAC    = "rwac"
	HRC     = "hrc"
	NavCamL = "navcam_l"
	NavCamR = "navcam_r"
	LocCamL = "loccam_l"
	LocCamR = "loccam_r"
	CLUPI   = "clupi"
	ISEM    = "isem"
)

// Shared mast-head geometry of the PanCam optical bench.
const (
	wacOffsetX = 0.25
	hrcOffsetX = 0.154
	benchY     = 0.155
	benchZ     = -0.02
	wacToeIn   = 0.08 // rad
)

// Reference returns the instrument table of the reference rover: the
// PanCam wide-angle pair and high-resolution camera, the navigation and
// localisation stereo pairs, the close-up imager on the drill and the
// narrow-band infrared spectrometer.
func Reference() []Spec {
	return []Spec{
		{
			ID: LWAC, VerticalFovDeg: 38, AspectRatio: 1, NearDistance: 1, FarDistance: 2,
			MountPosition: mgl64.Vec3{-wacOffsetX, benchY, benchZ},
			MountRotation: MountYaw(-wacToeIn),
			Style:         Style{Color: 0x886666, Opacity: 0.4},
		},
		{
			ID: RWAC, VerticalFovDeg: 38, AspectRatio: 1, NearDistance: 1, FarDistance: 2,
			MountPosition: mgl64.Vec3{wacOffsetX, benchY, benchZ},
			MountRotation: MountYaw(wacToeIn),
			Style:         Style{Color: 0x668866, Opacity: 0.4},
		},
		{
			ID: HRC, VerticalFovDeg: 4.88, AspectRatio: 1, NearDistance: 0.98, FarDistance: 2.02,
			MountPosition: mgl64.Vec3{hrcOffsetX, benchY, benchZ},
			MountRotation: mgl64.QuatIdent(),
			Style:         Style{Color: 0x666688, Opacity: 0.4},
		},
		{
			ID: NavCamL, VerticalFovDeg: 65, AspectRatio: 1, NearDistance: 0.5, FarDistance: 4,
			MountPosition: mgl64.Vec3{-0.075, 0.08, -0.05},
			MountRotation: mgl64.QuatIdent(),
			Style:         Style{Color: 0x888866, Opacity: 0.3},
		},
		{
			ID: NavCamR, VerticalFovDeg: 65, AspectRatio: 1, NearDistance: 0.5, FarDistance: 4,
			MountPosition: mgl64.Vec3{0.075, 0.08, -0.05},
			MountRotation: mgl64.QuatIdent(),
			Style:         Style{Color: 0x888866, Opacity: 0.3},
		},
		{
			ID: LocCamL, VerticalFovDeg: 65, AspectRatio: 1, NearDistance: 0.5, FarDistance: 3,
			MountPosition: mgl64.Vec3{-0.075, -0.9, -0.6},
			MountRotation: MountYawPitch(0, -15),
			Stage:         StageBody,
			Style:         Style{Color: 0x668888, Opacity: 0.3},
		},
		{
			ID: LocCamR, VerticalFovDeg: 65, AspectRatio: 1, NearDistance: 0.5, FarDistance: 3,
			MountPosition: mgl64.Vec3{0.075, -0.9, -0.6},
			MountRotation: MountYawPitch(0, -15),
			Stage:         StageBody,
			Style:         Style{Color: 0x668888, Opacity: 0.3},
		},
		{
			ID: CLUPI, VerticalFovDeg: 14, AspectRatio: 4.0 / 3.0, NearDistance: 0.1, FarDistance: 2,
			MountPosition: mgl64.Vec3{0.3, -1.3, -0.3},
			MountRotation: MountYawPitch(0, -60),
			Stage:         StageBody,
			Asset:         "drill",
			Style:         Style{Color: 0x886688, Opacity: 0.4},
		},
		{
			ID: ISEM, VerticalFovDeg: 1, AspectRatio: 1, NearDistance: 1, FarDistance: 2,
			MountPosition: mgl64.Vec3{-hrcOffsetX, benchY, benchZ},
			MountRotation: mgl64.QuatIdent(),
			Style:         Style{Color: 0x884444, Opacity: 0.5},
		},
	}
}
