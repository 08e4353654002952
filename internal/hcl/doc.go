// Package hcl provides the HCL implementation of config.Loader and the
// inverse writer that turns a live area back into an HCL file.
//
// An area file is made of four block types:
//
//	locals { detour = 2 }
//
//	node "Route_3" {
//	  kind = "evacuation_route"
//	  link "RiskArea_1" { distance = 4 + local.detour }
//	}
//
//	edge "Route_3" "RescueCenter_1" { distance = 9 }
//
//	query "north" {
//	  start        = "RiskArea_1"
//	  destinations = ["RescueCenter_1", "RescueCenter_2"]
//	}
//
// Distances, starts and destination lists are expressions evaluated with
// cty against the merged locals and a small numeric function library.
package hcl
